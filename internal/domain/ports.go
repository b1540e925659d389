package domain

import "context"

// CartGateway описывает четыре операции удалённого API корзины.
// Все операции требуют валидного bearer-токена; его отсутствие гейтвей
// обязан превратить в ошибку аутентификации до обращения к сети.
type CartGateway interface {
	// FetchCart возвращает сырые позиции корзины с сервера.
	FetchCart(ctx context.Context) ([]CartItemDTO, error)
	// AddItem создаёт или инкрементирует позицию на сервере.
	AddItem(ctx context.Context, productID int, color, size string, quantity int) error
	// UpdateItem выставляет позиции абсолютное количество (не дельту).
	UpdateItem(ctx context.Context, productID int, colorName, size string, quantity int) error
	// RemoveItem удаляет позицию целиком независимо от количества.
	RemoveItem(ctx context.Context, productID int, colorName, size string) (bool, error)
}

// ProductGateway описывает чтение каталога товаров.
type ProductGateway interface {
	ListProducts(ctx context.Context, query ProductQuery) (ProductPage, error)
	GetProduct(ctx context.Context, id int) (Product, error)
}

// AuthGateway описывает операции аутентификации удалённого API.
type AuthGateway interface {
	Login(ctx context.Context, email, password string) (Session, error)
	Register(ctx context.Context, payload RegisterPayload) error
}

// CheckoutGateway оформляет заказ из текущей корзины на сервере.
type CheckoutGateway interface {
	Checkout(ctx context.Context) error
}

// CredentialSource выдаёт bearer-токен для запросов к API.
// Возвращает ErrNoCredential, если токена нет, и ErrCredentialExpired,
// если сохранённый токен уже истёк. Retrieval инжектируется явной
// зависимостью, а не читается из глобального состояния.
type CredentialSource interface {
	Token() (string, error)
}

// CredentialFunc адаптирует функцию к CredentialSource (удобно в тестах).
type CredentialFunc func() (string, error)

func (f CredentialFunc) Token() (string, error) { return f() }

// MetadataCache — сессионный кеш отображаемых метаданных по ключу позиции.
// Заполняется при добавлении и обновлении, читается при нормализации,
// когда сервер не прислал имя/картинку/цену. Количество не кеширует никогда.
type MetadataCache interface {
	Get(key LineKey) (Metadata, bool)
	Put(key LineKey, meta Metadata)
	// Sweep отмечает живые ключи; запись, не встречавшаяся в двух
	// последовательных успешных refresh подряд, вытесняется.
	// Возвращает число удалённых записей.
	Sweep(live map[LineKey]struct{}) int
}

// LocalStore — локальное key-value хранилище строк, переживающее
// перезапуск процесса (аналог localStorage браузера).
type LocalStore interface {
	// Get возвращает значение и признак его наличия.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}
