// Package formsearch embeds the form catalog search engine in-process.
//
// The engine ranks catalog forms against free-text queries using typo-tolerant
// multi-field matching, a domain synonym dictionary and a substring fallback.
// It never fails on a query: an empty query browses the catalog by name.
//
//	client, _ := formsearch.New(formsearch.WithSeedFile("config/forms.yaml"))
//	defer client.Close()
//
//	res := client.Search("acat transfer", 10)
//	for _, it := range res.Items {
//	    fmt.Println(it.Code, it.Name)
//	}
//
// By default the catalog lives in memory. WithValkey or WithRedis persist it
// so several processes share one catalog.
package formsearch
