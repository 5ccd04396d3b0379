// Package nav drives comic navigation.
//
// A Navigator owns the cursor held in a state.Store, computes the target id
// for each command, fetches it through a comic.Source and reports every
// outcome to a view.Presenter. The cursor only moves after a fetch succeeds,
// and responses that were overtaken by a newer request are dropped.
package nav
