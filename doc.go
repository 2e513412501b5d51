// Package acervo is the composition root of the BDG knowledge portal, a local
// archive of innovations and lessons learned.
//
// It connects the domain (records, ranking, navigation) with the storage
// adapters using the same hexagonal layout throughout: pkg/core holds the
// types and ports, pkg/adapters the durable stores, and the remaining pkg/
// packages the behavior.
//
// The whole collection is one JSON array stored under a single key
// (bdg_inova_plus_v2 by default). Every creation, edit or deletion rewrites
// it. Sessions sharing a vault are not coordinated: the last writer wins,
// and the fs adapter reloads the others when it sees the overwrite.
//
// Usage:
//
//	portal, err := acervo.Open(ctx, ".acervo",
//		acervo.WithLogger(logger),
//		acervo.WithConfirm(prompt),
//	)
//	if err != nil {
//		return err
//	}
//	defer portal.Close()
//
//	rec, err := portal.Store.Create(ctx, core.Draft{Kind: core.KindLesson, ...})
//	board := ranking.Summarize(portal.Store.Records())
package acervo
