// Package main provides the entry point of folio-admin, the backend of a personal portfolio site.
// It serves a json api for achievements, testimonials, social links, admin users and site
// settings, guards mutations with a cookie session and can serve the static front end.
// Data is kept with gorm in sqlite, mysql or postgres.
package main
