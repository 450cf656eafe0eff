package main

import (
	"database/sql"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/forevershop/forever-backend/internal/banner"
	"github.com/forevershop/forever-backend/internal/cart"
	"github.com/forevershop/forever-backend/internal/config"
	"github.com/forevershop/forever-backend/internal/coupon"
	"github.com/forevershop/forever-backend/internal/gateway"
	"github.com/forevershop/forever-backend/internal/newsletter"
	"github.com/forevershop/forever-backend/internal/notify"
	"github.com/forevershop/forever-backend/internal/order"
	"github.com/forevershop/forever-backend/internal/product"
	"github.com/forevershop/forever-backend/internal/review"
	"github.com/forevershop/forever-backend/internal/user"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	app := fiber.New()
	setupCORS(app)

	// uploaded product images are served straight off local disk
	app.Static("/uploads", "./uploads")

	db := mustOpenDB(cfg.DatabaseURL)
	defer db.Close()
	ensureSchema(db)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	defer redisClient.Close()

	logger := log.Default()
	mailer := notify.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.FromEmail, logger)

	userService := user.NewService(user.NewPostgresRepository(db), user.NewRedisOTPStore(redisClient), mailer)
	userHandler := user.NewHandler(userService, cfg.JWTSecret, cfg.AdminEmail, cfg.AdminPassword)

	productService := product.NewService(product.NewPostgresRepository(db))
	productHandler := product.NewHandler(productService)

	cartService := cart.NewService(cart.NewPostgresRepository(db))
	cartHandler := cart.NewHandler(cartService)

	couponService := coupon.NewService(coupon.NewPostgresRepository(db))
	couponHandler := coupon.NewHandler(couponService)

	orderService := order.NewService(order.NewPostgresRepository(db), order.Deps{
		Stock:       productService,
		Carts:       cartService,
		Stripe:      gateway.NewStripeClient(cfg.StripeSecretKey),
		Razorpay:    gateway.NewRazorpayClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret),
		Notifier:    mailer,
		Logger:      logger,
		Currency:    cfg.Currency,
		DeliveryFee: cfg.DeliveryFee,
		FrontendURL: cfg.FrontendURL,
	})
	orderHandler := order.NewHandler(orderService)

	reviewService := review.NewService(review.NewPostgresRepository(db), orderService)
	reviewHandler := review.NewHandler(reviewService)

	bannerHandler := banner.NewHandler(banner.NewService(banner.NewPostgresRepository(db)))
	newsletterHandler := newsletter.NewHandler(newsletter.NewService(newsletter.NewPostgresRepository(db)))

	// public routes must be registered before the JWT middleware
	userHandler.RegisterPublicRoutes(app)
	productHandler.RegisterPublicRoutes(app)
	bannerHandler.RegisterPublicRoutes(app)
	reviewHandler.RegisterPublicRoutes(app)
	newsletterHandler.RegisterPublicRoutes(app)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
	}))

	userHandler.RegisterProtectedRoutes(app)
	cartHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)
	couponHandler.RegisterProtectedRoutes(app)
	reviewHandler.RegisterProtectedRoutes(app)

	userHandler.RegisterAdminRoutes(app, user.AdminRequired)
	productHandler.RegisterAdminRoutes(app, user.AdminRequired)
	orderHandler.RegisterAdminRoutes(app, user.AdminRequired)
	couponHandler.RegisterAdminRoutes(app, user.AdminRequired)
	bannerHandler.RegisterAdminRoutes(app, user.AdminRequired)
	reviewHandler.RegisterAdminRoutes(app, user.AdminRequired)
	newsletterHandler.RegisterAdminRoutes(app, user.AdminRequired)

	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func mustOpenDB(dbURL string) *sql.DB {
	if dbURL == "" {
		panic("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		panic(err)
	}

	if err := db.Ping(); err != nil {
		panic(err)
	}

	return db
}

func ensureSchema(db *sql.DB) {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			user_id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			cart_data jsonb NOT NULL DEFAULT '{}',
			is_blocked BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TEXT NOT NULL DEFAULT '',
			updated_at TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			product_id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price NUMERIC NOT NULL DEFAULT 0,
			images TEXT[] NOT NULL DEFAULT '{}',
			category TEXT NOT NULL DEFAULT '',
			sub_category TEXT NOT NULL DEFAULT '',
			sizes TEXT[] NOT NULL DEFAULT '{}',
			stock INT NOT NULL DEFAULT 0,
			bestseller BOOLEAN NOT NULL DEFAULT FALSE,
			date TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			order_id SERIAL PRIMARY KEY,
			user_id INT NOT NULL,
			items jsonb NOT NULL DEFAULT '[]',
			amount NUMERIC NOT NULL DEFAULT 0,
			address jsonb NOT NULL DEFAULT '{}',
			status TEXT NOT NULL,
			payment_method TEXT NOT NULL,
			payment BOOLEAN NOT NULL DEFAULT FALSE,
			payment_status TEXT NOT NULL,
			payment_details jsonb NOT NULL DEFAULT '{}',
			discount_amount NUMERIC NOT NULL DEFAULT 0,
			coupon_code TEXT NOT NULL DEFAULT '',
			delivery_fee NUMERIC NOT NULL DEFAULT 0,
			tracking_number TEXT NOT NULL DEFAULT '',
			status_history jsonb NOT NULL DEFAULT '[]',
			invoice_number TEXT NOT NULL UNIQUE,
			date TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS coupons (
			coupon_id SERIAL PRIMARY KEY,
			code TEXT NOT NULL UNIQUE,
			type TEXT NOT NULL,
			value NUMERIC NOT NULL DEFAULT 0,
			min_order_amount NUMERIC NOT NULL DEFAULT 0,
			max_discount NUMERIC NOT NULL DEFAULT 0,
			max_uses INT NOT NULL DEFAULT 0,
			used_count INT NOT NULL DEFAULT 0,
			expiry_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			description TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS banners (
			banner_id SERIAL PRIMARY KEY,
			title TEXT NOT NULL,
			mobile_image TEXT NOT NULL DEFAULT '',
			desktop_image TEXT NOT NULL DEFAULT '',
			link TEXT NOT NULL DEFAULT '',
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			ord INT NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS reviews (
			review_id SERIAL PRIMARY KEY,
			product_id INT NOT NULL,
			user_id INT NOT NULL,
			user_name TEXT NOT NULL,
			rating INT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			comment TEXT NOT NULL DEFAULT '',
			is_approved BOOLEAN NOT NULL DEFAULT TRUE,
			helpful_count INT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (user_id, product_id)
		)`,
		`CREATE TABLE IF NOT EXISTS newsletter_subscribers (
			subscriber_id SERIAL PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			token TEXT NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			subscribed_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			panic(err)
		}
	}
}
