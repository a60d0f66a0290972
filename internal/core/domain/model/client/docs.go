// Package client provides the Client aggregate for passenger management in
// the dispatch service. Clients are registered lazily on first contact by
// their Telegram identity and keep lightweight profile data refreshed on
// every re-contact.
package client
