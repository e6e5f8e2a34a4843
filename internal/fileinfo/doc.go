// Package fileinfo remembers where the cursor was when a file was closed.
//
// Positions are kept in a SQLite database (one row per canonical file
// path) that is opened on first use. A disabled Store accepts every call
// and does nothing, so callers need not check the setting themselves.
package fileinfo
