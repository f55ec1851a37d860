package service

// requireOwner 统一的所有权判定：所有变更操作先取资源再过这里
// 资源不存在的情况由调用方在取资源时映射为 ErrNotFound，先于本判定
func requireOwner(ownerID, subjectID string) error {
	if ownerID != subjectID {
		return ErrForbidden
	}
	return nil
}
