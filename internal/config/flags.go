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
//	-f encrypted blob storage root path
//	-d database DSN
//	-c/-config json file path with configs
//	-jwt-secret JWT signing secret
//	-token-issuer token issuer name
//	-token-duration session token duration (e.g., "1h", "30m")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-master-key base64 file-encryption master key
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var fileStoragePath string
	var databaseDSN string
	var jsonConfigPath string
	var jwtSecret string
	var tokenIssuer string
	var tokenDuration time.Duration
	var requestTimeout time.Duration
	var masterKey string

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&fileStoragePath, "f", "", "Encrypted blob storage root path")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&jwtSecret, "jwt-secret", "", "JWT signing secret")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	flag.DurationVar(&tokenDuration, "token-duration", 0, "Session token duration (e.g., 1h, 30m)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.StringVar(&masterKey, "master-key", "", "Base64 file-encryption master key")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			JWTSecret:               jwtSecret,
			TokenIssuer:             tokenIssuer,
			TokenDuration:           tokenDuration,
			FileEncryptionMasterKey: masterKey,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
			Files: Files{
				BinaryDataDir: fileStoragePath,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
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
// It checks that the port is a positive integer (no upper bound is checked),
// checks IP correctness unless host is "localhost",
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
