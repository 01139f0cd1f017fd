// Package seed provides idempotent first-run setup: the admin user and
// optional starter content loaded from a TOML file.
package seed
