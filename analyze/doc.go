// Package analyze performs Japanese morphological analysis.
//
// Tokenization is backed by a kagome tokenizer over the IPA dictionary.
// Building the tokenizer parses the whole dictionary, which takes long
// enough that it must happen at most once per process: a Loader defers
// construction until the first request, collapses concurrent first
// requests into one build, caches the instance forever on success, and
// forgets a failed attempt so the next request can try again.
package analyze
