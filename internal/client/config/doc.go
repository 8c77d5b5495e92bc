// Package config loads the settings shared by every clinicsite process that
// talks to the CMS: where the CMS lives, the fallback identity, the team
// collection and its cache TTL, and the credential storage tiers.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, optionally seeded from a dotenv file given with
//     -env (see parseEnv).
//  3. Optional JSON file selected with -c or -config (see parseJson).
//  4. Command-line flags (see parseFlags).
//
// Later sources override earlier ones.
//
// Supported flags
//
//	-u string   CMS base URL
//	-e string   fallback identity email
//	-p string   fallback identity password
//	-k string   team collection name
//	-t int      team cache TTL (seconds)
//	-d string   durable store DSN
//	-s string   session store backend: memory or redis
//	-r string   redis address
//
// # JSON schema
//
//	{
//	  "cms_base_url": "https://cms.example.com",
//	  "cms_email": "site@example.com",
//	  "cms_password": "...",
//	  "cms_collection": "carrossel_funcionarios",
//	  "cms_cache_ttl": "5m",
//	  "cms_request_timeout": "10s",
//	  "cms_all_proxy": "",
//	  "store_driver": "sqlite",
//	  "store_dsn": "data/clinicsite.db",
//	  "store_passphrase": "",
//	  "session_backend": "memory",
//	  "redis_addr": "127.0.0.1:6379",
//	  "redis_password": "",
//	  "session_ttl": "12h",
//	  "log_level": "info",
//	  "log_format": "text"
//	}
//
// Durations accept "5m"-style strings or integer nanoseconds.
package config
