// Package cache stores fetched city pages with a TTL so repeated sessions and
// `citytable list` runs do not hit the records API for data seen recently.
//
// Two backends implement Store:
//   - FileStore keeps one JSON file per page under ~/.citytable/cache
//   - RedisStore keeps entries in Redis with a native expiry
//
// Cache failures are never fatal to a fetch; callers log and fall through to
// the network.
package cache
