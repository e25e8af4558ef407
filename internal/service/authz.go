package service

import "taskManager/internal/models/user"

// CanMutate - пользователя может менять и удалять только он сам
func CanMutate(principal user.Principal, targetUserID int64) bool {
	return principal.ID != 0 && principal.ID == targetUserID
}
