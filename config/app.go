package config

type App struct {
	Port          string `env:"APP_PORT" default:"8080"`
	DatabaseURL   string `env:"DATABASE_URL,required"`
	JWTSecret     string `env:"JWT_SECRET,required"`
	ScrapeBaseURL string `env:"SCRAPE_BASE_URL" default:"https://books.toscrape.com/"`
	Env           string `env:"APP_ENV" default:"dev"`
}
