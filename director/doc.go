// Package director is the entity store every gameplay system depends on.
//
// Types are registered from factories; a throwaway probe instance supplies the
// draw layer, update group, collision groups and primary-enemy flag. Entities
// are appended per type in insertion order, flagged dead by gameplay code and
// removed on the next Prune, so collision handlers may kill several entities
// within one pass without invalidating the iteration.
//
// A frame driver calls UpdateAll then DrawAll once per frame. UpdateAll prunes
// first, then walks types by ascending update group; DrawAll walks types by
// ascending draw layer using an order cached until the next registration.
// Ties keep registration order.
//
// The Director is single-threaded by contract and holds no locks.
package director
