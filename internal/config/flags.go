package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-c/-config json file path with configs
//	-access-sign-key access token signing key
//	-refresh-sign-key refresh token signing key
//	-token-issuer token issuer name
//	-access-token-duration access token lifetime (e.g., "15m")
//	-refresh-token-duration refresh token lifetime (e.g., "168h")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-auth-address client adapter auth service address
//	-todo-address client adapter todo service address
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var accessSignKey string
	var refreshSignKey string
	var tokenIssuer string
	var accessTokenDuration time.Duration
	var refreshTokenDuration time.Duration
	var requestTimeout time.Duration
	var authAddress string
	var todoAddress string

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&accessSignKey, "access-sign-key", "", "Access token signing key")
	flag.StringVar(&refreshSignKey, "refresh-sign-key", "", "Refresh token signing key")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	flag.DurationVar(&accessTokenDuration, "access-token-duration", 0, "Access token lifetime (e.g., 15m)")
	flag.DurationVar(&refreshTokenDuration, "refresh-token-duration", 0, "Refresh token lifetime (e.g., 168h)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.StringVar(&authAddress, "auth-address", "", "Auth service address for the client adapter")
	flag.StringVar(&todoAddress, "todo-address", "", "Todo service address for the client adapter")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			AccessSignKey:        accessSignKey,
			RefreshSignKey:       refreshSignKey,
			TokenIssuer:          tokenIssuer,
			AccessTokenDuration:  accessTokenDuration,
			RefreshTokenDuration: refreshTokenDuration,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Adapter: Adapter{
			AuthAddress: authAddress,
			TodoAddress: todoAddress,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
