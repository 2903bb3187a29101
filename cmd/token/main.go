// token emite un JWT de servicio para un consumidor interno de la pasarela
// (dashboard, servicio de reporting). Lee JWT_SECRET, JWT_ISSUER y
// JWT_EXPIRATION_MINUTES del entorno o de .env.
//
// Uso: go run ./cmd/token -consumer dashboard-ventas [-minutes 1440]
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/jhoicas/albaranes-api/pkg/jwt"
)

func main() {
	consumer := flag.String("consumer", "", "Nombre del consumidor (claim consumer)")
	minutes := flag.Int("minutes", 0, "Validez en minutos (por defecto JWT_EXPIRATION_MINUTES)")
	flag.Parse()

	if *consumer == "" {
		flag.Usage()
		os.Exit(1)
	}

	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()
	v.AutomaticEnv()
	v.SetDefault("JWT_ISSUER", "albaranes-api")
	v.SetDefault("JWT_EXPIRATION_MINUTES", 60*24*30)

	secret := v.GetString("JWT_SECRET")
	if secret == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET no definido")
		os.Exit(1)
	}
	exp := *minutes
	if exp <= 0 {
		exp = v.GetInt("JWT_EXPIRATION_MINUTES")
	}

	tok, err := jwt.Generate(secret, *consumer, v.GetString("JWT_ISSUER"), exp)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generar token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
