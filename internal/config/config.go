package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath     string
	RawMailDir string
	OutputDir  string

	RefDataProvider     string
	PriceSheetURL       string
	ProductSheetURL     string
	MaterialSheetURL    string
	RefDataWorkbook     string
	SheetsAPIKey        string
	SheetsID            string
	SheetsPriceRange    string
	SheetsProductRange  string
	SheetsMaterialRange string
	RefDataTTLSec       int
	RefDataRateRPS      int
	RefDataTimeoutMs    int

	GmailClientID     string
	GmailClientSecret string
	GmailRedirectURI  string
	GmailRefreshToken string

	IMAPHost     string
	IMAPPort     int
	IMAPSecure   bool
	IMAPUser     string
	IMAPPassword string
	IMAPMarkSeen bool

	MailFilterFrom    string
	MailFilterSubject string

	MailListenerProvider    string
	MailListenerLabel       string
	MailListenerIntervalSec int
	MailListenerFetchMax    int
	MailListenerBatch       int
	MailListenerAutoExport  bool
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DBPath:     getEnv("DB_PATH", filepath.Join(cwd, "data", "app.db")),
		RawMailDir: getEnv("MAIL_RAW_DIR", filepath.Join(cwd, "data", "raw")),
		OutputDir:  getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),

		RefDataProvider:     getEnv("REFDATA_PROVIDER", "csvweb"),
		PriceSheetURL:       getEnv("PRICE_SHEET_URL", ""),
		ProductSheetURL:     getEnv("PRODUCT_SHEET_URL", ""),
		MaterialSheetURL:    getEnv("MATERIAL_SHEET_URL", ""),
		RefDataWorkbook:     getEnv("REFDATA_WORKBOOK", ""),
		SheetsAPIKey:        getEnv("SHEETS_API_KEY", ""),
		SheetsID:            getEnv("SHEETS_SPREADSHEET_ID", ""),
		SheetsPriceRange:    getEnv("SHEETS_PRICE_RANGE", "Prices"),
		SheetsProductRange:  getEnv("SHEETS_PRODUCT_RANGE", "SS26 Product_Name"),
		SheetsMaterialRange: getEnv("SHEETS_MATERIAL_RANGE", "Materials"),
		RefDataTTLSec:       getEnvInt("REFDATA_TTL_SEC", 600),
		RefDataRateRPS:      getEnvInt("REFDATA_RATE_LIMIT_RPS", 5),
		RefDataTimeoutMs:    getEnvInt("REFDATA_TIMEOUT_MS", 30000),

		GmailClientID:     getEnv("GMAIL_CLIENT_ID", ""),
		GmailClientSecret: getEnv("GMAIL_CLIENT_SECRET", ""),
		GmailRedirectURI:  getEnv("GMAIL_REDIRECT_URI", "https://developers.google.com/oauthplayground"),
		GmailRefreshToken: getEnv("GMAIL_REFRESH_TOKEN", ""),

		IMAPHost:     getEnv("IMAP_HOST", ""),
		IMAPPort:     getEnvInt("IMAP_PORT", 993),
		IMAPSecure:   getEnvBool("IMAP_SECURE", true),
		IMAPUser:     getEnv("IMAP_USER", ""),
		IMAPPassword: getEnv("IMAP_PASSWORD", ""),
		IMAPMarkSeen: getEnvBool("IMAP_MARK_SEEN", false),

		MailFilterFrom:    getEnv("MAIL_FILTER_FROM", ""),
		MailFilterSubject: getEnv("MAIL_FILTER_SUBJECT", ""),

		MailListenerProvider:    getEnv("MAIL_LISTENER_PROVIDER", "imap"),
		MailListenerLabel:       getEnv("MAIL_LISTENER_LABEL", "INBOX"),
		MailListenerIntervalSec: getEnvInt("MAIL_LISTENER_INTERVAL_SEC", 60),
		MailListenerFetchMax:    getEnvInt("MAIL_LISTENER_FETCH_MAX", 20),
		MailListenerBatch:       getEnvInt("MAIL_LISTENER_PROCESS_BATCH", 20),
		MailListenerAutoExport:  getEnvBool("MAIL_LISTENER_AUTO_EXPORT", true),
	}

	return cfg, nil
}

func (c Config) Require(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("missing required env var: %s", name)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(key, "")))
	if value == "" {
		return fallback
	}
	if value == "1" || value == "true" || value == "yes" || value == "on" {
		return true
	}
	if value == "0" || value == "false" || value == "no" || value == "off" {
		return false
	}
	return fallback
}
