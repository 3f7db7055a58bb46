// Package romaji transliterates kana to Latin script.
//
// The mapping follows Hepburn conventions as learners type them: long
// vowels are written out rather than marked with macrons, so トウキョウ
// becomes "toukyou" and コーヒー becomes "koohii". Input may be katakana
// or hiragana; readings produced by the morphological analyzer are
// katakana.
package romaji
