// Package spr implements a reader for individual sprites in Tibia.spr files.
//
// A spr file starts with a signature and a sprite count, followed by a table
// of block offsets, one per sprite id. Each block holds a single 32x32
// sprite, run-length encoded.
//
// Reader implements the sprite stream source of the sprcache package, and
// DecodeUpcoming is its matching decoder:
//
//	r, _ := spr.NewReader(f)
//	cache := sprcache.New(r, spr.DecodeUpcoming, sprcache.Options{})
package spr
