/*
Package builder turns a validated config.Model into a ready-to-run schedule.

Construction is a multi-phase process:

 1. Validation: the model is checked on its own (names, references) and
    against the registry (handlers, arguments).

 2. Tags: every tag is created in declaration order.

 3. Systems: every system is bound to its handler, its arguments are decoded
    into the handler's input struct, and the resulting runnable is added in
    declaration order with its id, tags and before/after constraints.

 4. Build: the schedule computes its order, failing on cycles.

A constraint may name something declared later in the files. Such a
constraint is held back and applied, inverted, when the named tag or system
is added: "a after b" becomes "b before a". The resulting edges are the same.
*/
package builder
