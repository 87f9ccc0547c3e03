// Package session provides in-memory shopping session management.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique 4-character session ID generation
//   - Expiry of idle sessions
//
// Each session owns a route planning engine built from its store configuration,
// together with the shopper's start location and shopping list. Sessions live only
// in memory and disappear when the process exits.
//
// Usage:
//
//	manager := session.NewManager()
//
//	sess, err := manager.Create("", storeConfig)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sess, err = manager.Get(sess.ID)
//	removed := manager.CleanupExpiredSessions(time.Hour)
package session
