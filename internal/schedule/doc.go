/*
Package schedule orders runnables by declared constraints and runs them in
that order.

A Schedule owns a graph.Graph keyed by *Runnable pointers and a registry that
binds identifiers to runnables and tags. Callers register work with Add,
declaring constraints as options:

	s := schedule.New[*World]()
	s.Add(applyForces, schedule.WithID(ident.Named("forces")))
	s.Add(integrate, schedule.After(schedule.Name("forces")))
	if err := s.Build(ctx); err != nil { ... }
	err := s.Run(ctx, world)

# Tags

A tag groups runnables. It is a pair of excluded sentinel vertices, before and
after, with every member wired between them. Constraining against a tag
constrains against the whole group. Tags must be created with CreateTag before
anything refers to them.

# Lifecycle

Mutations (Add, Remove, CreateTag, RemoveTag) leave the schedule dirty. Build
recomputes the order and Run executes the last built order. Run never rebuilds
on its own; running a dirty schedule executes whatever order was built last.

A Schedule is not safe for concurrent use.
*/
package schedule
