package booking

import "github.com/m04kA/SMC-RestaurantService/pkg/txmanager"

// Переиспользуем интерфейсы из txmanager для работы с БД
type DBExecutor = txmanager.DBExecutor
