package repository

import "context"

// トランザクション内で使う約束
type TxRepos interface {
	Products() ProductRepository
	Settings() SettingsRepository
	AuditLogs() AuditLogRepository
}

// UsecaseからTxの開始/commit/rollbackを隠す。
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}

// 実装（memory / gorm）ごとの部品一式
type Repositories struct {
	Products  ProductRepository
	Settings  SettingsRepository
	AuditLogs AuditLogRepository
	Tx        TransactionManager
}
