package config

import (
	"fmt"
	"math"
	"net/url"
	"os"
	"strconv"
	"strings"
)

// SQLiteConfig descreve como cada conexão do pool é aberta. Os campos com
// parâmetro no DSN vão na URL; o resto vira PRAGMA no hook de conexão.
type SQLiteConfig struct {
	CacheSizeKB   int    // negativo = KB, positivo = páginas
	TempStore     string // "MEMORY" ou "FILE"
	WALMode       bool
	SyncLevel     string // "OFF", "NORMAL", "FULL", "EXTRA"
	BusyTimeoutMS int
	MmapSizeBytes int64
}

func DefaultSQLiteConfig() SQLiteConfig {
	return SQLiteConfig{
		CacheSizeKB:   -16000,
		TempStore:     "MEMORY",
		WALMode:       true,
		SyncLevel:     "NORMAL",
		BusyTimeoutMS: 5000,
		MmapSizeBytes: 256 << 20,
	}
}

// DSN monta a URL com os parâmetros que o go-sqlite3 aplica em toda conexão
// nova. foreign_keys é por conexão no SQLite, por isso vai sempre.
func (c SQLiteConfig) DSN(databaseURL string) string {
	params := url.Values{}
	params.Set("_foreign_keys", "on")
	params.Set("_busy_timeout", strconv.Itoa(c.BusyTimeoutMS))
	params.Set("_journal_mode", journalMode(c.WALMode))
	params.Set("_synchronous", c.SyncLevel)

	sep := "?"
	if strings.Contains(databaseURL, "?") {
		sep = "&"
	}
	return databaseURL + sep + params.Encode()
}

// DSN usa a configuração padrão, sem ler o ambiente. Serve aos testes e a
// quem abre o banco direto com sql.Open.
func DSN(databaseURL string) string {
	return DefaultSQLiteConfig().DSN(databaseURL)
}

// ConnPragmas são os ajustes sem parâmetro no DSN. Valem só para a conexão
// em que rodam, então o pool executa todos a cada conexão aberta.
func (c SQLiteConfig) ConnPragmas() []string {
	pragmas := []string{
		fmt.Sprintf("PRAGMA temp_store = %s", c.TempStore),
		fmt.Sprintf("PRAGMA cache_size = %d", c.CacheSizeKB),
		fmt.Sprintf("PRAGMA mmap_size = %d", c.MmapSizeBytes),
	}
	if c.WALMode {
		pragmas = append(pragmas, "PRAGMA wal_autocheckpoint = 1000")
	}
	return pragmas
}

func GetSQLiteConfig() SQLiteConfig {
	cfg := DefaultSQLiteConfig()

	if v, ok := os.LookupEnv("SQLITE_CACHE_SIZE"); ok {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.CacheSizeKB = i
		}
	}

	if v, ok := os.LookupEnv("SQLITE_TEMP_STORE"); ok {
		v = strings.ToUpper(v)
		if v == "MEMORY" || v == "FILE" {
			cfg.TempStore = v
		}
	}

	if v, ok := os.LookupEnv("SQLITE_WAL_MODE"); ok {
		cfg.WALMode = strings.ToLower(v) == "true" || v == "1"
	}

	if v, ok := os.LookupEnv("SQLITE_SYNC_LEVEL"); ok {
		v = strings.ToUpper(v)
		if v == "OFF" || v == "NORMAL" || v == "FULL" || v == "EXTRA" {
			cfg.SyncLevel = v
		}
	}

	if v, ok := os.LookupEnv("SQLITE_BUSY_TIMEOUT_MS"); ok {
		if ms, err := strconv.Atoi(v); err == nil && ms >= 0 {
			cfg.BusyTimeoutMS = ms
		}
	}

	if _, ok := os.LookupEnv("SQLITE_CACHE_SIZE"); !ok {
		if ramMB := detectRAM(); ramMB > 0 {
			cfg.CacheSizeKB = calculateCacheSize(ramMB)
		}
	}

	return cfg
}

func calculateCacheSize(ramMB int) int {
	cacheMB := int(math.Floor(float64(ramMB) * 0.02))
	cacheMB = max(cacheMB, 8)
	cacheMB = min(cacheMB, 256)
	return -cacheMB * 1024
}

func detectRAM() int {
	if v, ok := os.LookupEnv("SYSTEM_RAM_MB"); ok {
		if mb, err := strconv.Atoi(v); err == nil && mb > 0 {
			return mb
		}
	}

	data, err := os.ReadFile("/proc/meminfo")
	if err == nil {
		lines := string(data)
		for line := range strings.SplitSeq(lines, "\n") {
			if strings.HasPrefix(line, "MemTotal:") {
				fields := strings.Fields(line)
				if len(fields) >= 2 {
					if kb, err := strconv.ParseInt(fields[1], 10, 64); err == nil {
						return int(kb / 1024)
					}
				}
			}
		}
	}

	return 0
}

func journalMode(wal bool) string {
	if wal {
		return "WAL"
	}
	return "DELETE"
}
