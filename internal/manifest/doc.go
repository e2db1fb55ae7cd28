// Package manifest loads registry manifests: TOML files declaring an
// external class tree, the Go package it generates into, and a battery
// of hierarchy checks.
//
//	[package]
//	name = "scene"
//	doc  = "Scene graph classes."
//
//	[[class]]
//	name = "Object"
//
//	[[class]]
//	name = "Node"
//	base = "Object"
//	doc  = "Anything that can enter the tree."
//
//	[[check]]
//	kind   = "isa"
//	class  = "Node"
//	target = "Object"
//
//	[[check]]
//	kind  = "cast-error"
//	from  = "?*Node"
//	to    = "*Object"
//	error = "optionality"
//
// A class may name a base declared later in the file; Resolve orders
// the declarations parent-first before interning them into a table.
// Class names are NFC-normalized, so alternative Unicode spellings of
// one name land on one class.
package manifest
