package hcl

import (
	"github.com/hashicorp/hcl/v2"
)

// fileRoot is a struct used to decode all possible top-level blocks from any file.
type fileRoot struct {
	Tags    []*tagBlock    `hcl:"tag,block"`
	Systems []*systemBlock `hcl:"system,block"`
	Remain  hcl.Body       `hcl:",remain"`
}

// tagBlock represents a `tag` block.
type tagBlock struct {
	Name   string   `hcl:"name,label"`
	Before []string `hcl:"before,optional"`
	After  []string `hcl:"after,optional"`
}

// systemBlock represents a `system` block.
type systemBlock struct {
	Name      string     `hcl:"name,label"`
	Handler   string     `hcl:"handler"`
	Tags      []string   `hcl:"tags,optional"`
	Before    []string   `hcl:"before,optional"`
	After     []string   `hcl:"after,optional"`
	Arguments *argsBlock `hcl:"arguments,block"`
}

// argsBlock represents the content of the 'arguments' block within a system.
type argsBlock struct {
	Body hcl.Body `hcl:",remain"`
}
