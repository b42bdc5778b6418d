package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	BaseURL     string `env:"BASE_URL"`
	DatabaseURL string `env:"DATABASE_URL"`

	MercadoPago MercadoPago `envPrefix:"MP_"`
	Supabase    Supabase    `envPrefix:"SUPABASE_"`
}

type MercadoPago struct {
	BaseApiURL    string `env:"BASE_API_URL" envDefault:"https://api.mercadopago.com"`
	AccessToken   string `env:"ACCESS_TOKEN"`
	WebhookSecret string `env:"WEBHOOK_SECRET"`
}

type Supabase struct {
	JWTSecret string `env:"JWT_SECRET"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}
