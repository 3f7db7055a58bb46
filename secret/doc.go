// Package secret resolves credential values referenced from
// configuration, so secrets stay out of config files.
//
// A config value is resolved in two steps. Strict environment
// expansion replaces ${VAR} forms, erroring on unset variables rather
// than producing empty credentials. Then a scheme prefix selects a
// provider:
//
//	env:DEEPL_API_KEY       read from the environment
//	file:/run/secrets/key   read from a mounted secret file
//
// Values without a registered scheme pass through as literals, so keys
// that happen to contain a colon still work.
package secret
