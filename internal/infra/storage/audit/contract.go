package audit

import "github.com/m04kA/SMC-SitterAvailability/pkg/dbmetrics"

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor
