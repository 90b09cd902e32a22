package domain

// KeyPrefix is the default namespace for every key written to the KV store.
const KeyPrefix = "formsearch:"

// DefaultSearchLimit is the result cap applied when the caller gives none.
const DefaultSearchLimit = 24
