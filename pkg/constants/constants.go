// pkg/constants/constants.go
package constants

//============== CACHE KEYS ==============

// Ключи кеша админских представлений в Redis.
const (
	// Версия списка заказов. Инкремент делает все закешированные страницы списка устаревшими.
	CacheKeyOrderListVersion = "admin:orders:version"

	// Формат: admin:orders:v<version>:<limit>:<offset>:<filterhash>
	CacheKeyOrderListPage = "admin:orders:v%d:%d:%d:%s"

	// Формат: admin:order:<orderID>
	CacheKeyOrderDetail = "admin:order:%d"

	// Формат: admin:archive:<order|pdf|all>
	CacheKeyArchiveList = "admin:archive:%s"
)

//============== DATE FORMATS ==============

const DateTimeLayout = "2006-01-02 15:04:05"
