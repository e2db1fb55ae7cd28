// Package cast verifies upcasts between class shapes and compiles the
// verified pairs into explicit step plans.
//
// The package works purely on descriptors (classes.Shape, classes.Class
// rows); it never touches memory itself. Executing a plan against live
// pointers is the root package's job, running manifest check batteries
// is internal/manifest's.
package cast
