package service

import "go-articles/internal/model"

// CanMutate reports whether actor may confirm, edit, trash, restore or force delete
// article. Only the owner may; there is no admin override.
func CanMutate(actor model.Actor, article *model.Article) bool {
	return article.OwnedBy(actor)
}

// CanRead reports whether actor may see article. Everyone else gets a not-found so
// unpublished articles don't leak their existence.
func CanRead(actor model.Actor, article *model.Article) bool {
	return CanMutate(actor, article) || article.Published()
}
