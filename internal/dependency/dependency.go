package dependency

import (
	"context"
	"database/sql"
	"time"

	"github.com/elarafragrance/elara-backend/internal/dto"
	"github.com/elarafragrance/elara-backend/internal/entity"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type (
	Products interface {
		// AddProduct adds a new product and returns its id.
		AddProduct(ctx context.Context, prd *entity.ProductInsert) (int, error)
		// UpdateProduct replaces the product body for the given id.
		UpdateProduct(ctx context.Context, prd *entity.ProductInsert, id int) error
		// GetProductsPaged returns a paged product list with the category name joined in.
		GetProductsPaged(ctx context.Context, limit, offset int, sortFactor entity.SortFactor, orderFactor entity.OrderFactor, filter *entity.ProductFilter) ([]entity.Product, int, error)
		// GetProductById returns a product by its id.
		GetProductById(ctx context.Context, id int) (*entity.Product, error)
		// ArchiveProductById hides a product from the storefront without deleting it.
		ArchiveProductById(ctx context.Context, id int, archived bool) error
		// DeleteProductById deletes a product by its id.
		DeleteProductById(ctx context.Context, id int) error
		// GetLowStockProducts returns non-archived products with stock below
		// threshold, ascending by stock.
		GetLowStockProducts(ctx context.Context, threshold, limit int) ([]entity.Product, error)
		// ReduceStock decrements stock for the given items, failing when any
		// product has insufficient stock.
		ReduceStock(ctx context.Context, items []entity.OrderItemInsert) error
		// RestoreStock puts item quantities back, used on cancellation.
		RestoreStock(ctx context.Context, items []entity.OrderItemInsert) error

		AddCategory(ctx context.Context, name string) (int, error)
		ListCategories(ctx context.Context) ([]entity.Category, error)
		DeleteCategoryById(ctx context.Context, id int) error
	}

	Order interface {
		// CreateOrder validates items against live products, snapshots prices,
		// reduces stock and inserts the order in one transaction.
		CreateOrder(ctx context.Context, orderNew *entity.OrderNew, customerId int) (*entity.OrderFull, error)
		GetOrderByUUID(ctx context.Context, orderUUID string) (*entity.OrderFull, error)
		GetOrderById(ctx context.Context, orderId int) (*entity.OrderFull, error)
		// GetOrdersPaged lists orders, optionally narrowed to a status and/or customer.
		GetOrdersPaged(ctx context.Context, status entity.OrderStatusName, customerId, limit, offset int, of entity.OrderFactor) ([]entity.Order, error)
		// GetOrdersWithItemsSince returns orders placed at or after the given
		// time, ascending by placement, each with its line items.
		GetOrdersWithItemsSince(ctx context.Context, since time.Time) ([]entity.OrderFull, error)
		// SetOrderStatus applies a forward transition.
		SetOrderStatus(ctx context.Context, orderUUID string, next entity.OrderStatusName) error
		// AssignAgent puts the order out for delivery with the given agent.
		AssignAgent(ctx context.Context, orderUUID string, agentId int) error
		// GetAgentOrders lists orders assigned to a delivery agent.
		GetAgentOrders(ctx context.Context, agentId int, status entity.OrderStatusName) ([]entity.Order, error)
		// DeliverOrder marks the order delivered and writes the agent
		// commission, the only mutation allowed after that point.
		DeliverOrder(ctx context.Context, orderUUID string, commission decimal.Decimal) error
		// CancelOrder cancels and restores stock.
		CancelOrder(ctx context.Context, orderUUID string) error
		// GetStalePendingOrders returns orders stuck in PENDING since before the given time.
		GetStalePendingOrders(ctx context.Context, olderThan time.Time) ([]entity.Order, error)

		UpsertDeliveryOTP(ctx context.Context, orderId int, code string, expiresAt time.Time) error
		GetDeliveryOTP(ctx context.Context, orderId int) (*entity.DeliveryOTP, error)
		IncrementOTPAttempts(ctx context.Context, orderId int) error
		DeleteDeliveryOTP(ctx context.Context, orderId int) error
	}

	Promo interface {
		AddPromo(ctx context.Context, promo *entity.PromoCodeInsert) error
		ListPromos(ctx context.Context, limit, offset int, orderFactor entity.OrderFactor) ([]entity.PromoCode, error)
		DeletePromoCode(ctx context.Context, code string) error
		DisablePromoCode(ctx context.Context, code string) error
	}

	Review interface {
		// UpsertReview adds or replaces the customer's review of a product.
		UpsertReview(ctx context.Context, review *entity.ReviewInsert) error
		GetProductReviews(ctx context.Context, productId int, limit, offset int) ([]entity.Review, error)
		// GetReviewsSince returns reviews created at or after the given time.
		GetReviewsSince(ctx context.Context, since time.Time) ([]entity.Review, error)
		DeleteReviewById(ctx context.Context, id int) error
	}

	Account interface {
		AddAccount(ctx context.Context, account *entity.AccountInsert, pwHash string) (int, error)
		GetAccountByEmail(ctx context.Context, email string) (*entity.Account, error)
		GetAccountById(ctx context.Context, id int) (*entity.Account, error)
		ChangePassword(ctx context.Context, email, newHash string) error
		ListAccountsByRole(ctx context.Context, role entity.RoleName, limit, offset int) ([]entity.Account, error)
		// CountCustomersSince counts customer accounts created at or after the given time.
		CountCustomersSince(ctx context.Context, since time.Time) (int, error)
		DeleteAccountById(ctx context.Context, id int) error
	}

	Mail interface {
		AddMail(ctx context.Context, ser *entity.SendEmailRequest) (int, error)
		GetAllUnsent(ctx context.Context, withError bool) ([]entity.SendEmailRequest, error)
		UpdateSent(ctx context.Context, id int) error
		AddError(ctx context.Context, id int, errMsg string) error
	}

	Repository interface {
		Products() Products
		Order() Order
		Promo() Promo
		Review() Review
		Account() Account
		Mail() Mail
		Tx(ctx context.Context, f func(context.Context, Repository) error) error
		TxBegin(ctx context.Context) (Repository, error)
		TxCommit(ctx context.Context) error
		TxRollback(ctx context.Context) error
		Now() time.Time
		InTx() bool
		Close()
		IsErrUniqueViolation(err error) bool
		IsErrorRepeat(err error) bool
		Cache() Cache
		DB() DB
	}

	// DB represents database interface.
	DB interface {
		BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
		ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)

		// sqlx methods
		GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
		NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
		PrepareNamedContext(ctx context.Context, query string) (*sqlx.NamedStmt, error)
		PreparexContext(ctx context.Context, query string) (*sqlx.Stmt, error)
		QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
		QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error)
		SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	}

	Cache interface {
		GetCategoryById(id int) (*entity.Category, bool)
		GetCategoryByName(name string) (entity.Category, bool)
		AddCategory(category entity.Category)
		DeleteCategory(id int)

		GetPromoById(id int) (*entity.PromoCode, bool)
		GetPromoByCode(code string) (entity.PromoCode, bool)
		AddPromo(promo entity.PromoCode)
		DeletePromo(code string)
		DisablePromo(code string)
	}

	FileStore interface {
		// UploadProductImage uploads a raw base64 image and returns its public
		// URL together with a blurhash placeholder.
		UploadProductImage(ctx context.Context, rawB64Image, imageName string) (url string, blurhash string, err error)
	}

	Mailer interface {
		SendOrderConfirmation(ctx context.Context, rep Repository, to string, orderDetails *dto.OrderConfirmed) error
		SendOrderCancellation(ctx context.Context, rep Repository, to string, orderDetails *dto.OrderCancelled) error
		SendOrderShipped(ctx context.Context, rep Repository, to string, orderDetails *dto.OrderShipped) error
		SendOrderDelivered(ctx context.Context, rep Repository, to string, orderDetails *dto.OrderDelivered) error
		SendDeliveryOTP(ctx context.Context, rep Repository, to string, otpDetails *dto.DeliveryOTP) error
		Start(ctx context.Context) error
		Stop() error
	}

	Invoicer interface {
		// CreateInvoice opens a payment intent for the order total and returns
		// the client secret the storefront needs to finish the payment.
		CreateInvoice(ctx context.Context, orderUUID string, total decimal.Decimal) (string, error)
	}
)
