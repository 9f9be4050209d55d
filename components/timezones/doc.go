// Package timezones provides deterministic IANA timezone data as select
// question options, search helpers, and a small net/http handler that
// returns JSON options for typeahead selects.
//
// The handler responds to GET and HEAD requests and supports query and
// limit parameters to filter results. The backing data is loaded from the
// embedded list under data/iana_timezones.txt.
package timezones
