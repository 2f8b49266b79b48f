// Package users persists the user collection.
//
// The whole collection is one JSON document. Load reads it in full and Save
// replaces it in full; there are no partial updates and no locking, since a
// single process owns the file.
//
// Typical usage
//
//	repo := users.NewJSONFileRepository("usuarios.json")
//	list, _ := repo.Load(ctx)
//	list = append(list, u)
//	_ = repo.Save(ctx, list)
package users
