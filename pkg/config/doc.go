// Package config provides configuration management for lecture-eval.
//
// Configuration is read from a YAML file and overlaid with environment
// variables. Every attribute remembers where its value came from so that
// "evalctl configuration show" can report it.
//
// # Configuration Sources
//
//   - Defaults
//   - $EVAL_CONFIG_PATH/eval.yml (default /etc/lecture-eval/eval.yml)
//   - Environment variables (highest precedence)
//
// # Key Configuration Options
//
//   - EVAL_STORAGE_BACKEND: json or postgres
//   - EVAL_DATA_DIR: directory for the json backend files
//   - EVAL_RATING_MIN / EVAL_RATING_MAX: accepted rating bounds
//   - EVAL_CORS_ALLOWED_ORIGINS: comma separated origins
//   - EVAL_ADMIN_TOKEN_SECRET: HMAC secret guarding lecturer creation
//   - EVAL_LOG_LEVEL: debug, info, warn, error or none
//
// Watch keeps a running server in sync with edits to the config file.
package config
