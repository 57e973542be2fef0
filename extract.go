package main

import "sort"

type urlSet map[string]struct{}

// imageURLs collects every distinct non-empty image URL referenced by the
// catalog, from product images and variant images alike.
func imageURLs(products []Product) urlSet {
	set := make(urlSet)

	for _, product := range products {
		if images, ok := product["images"].([]any); ok {
			for _, img := range images {
				set.add(img)
			}
		}

		variants, ok := product["variants"].([]any)
		if !ok {
			continue
		}
		for _, v := range variants {
			if variant, ok := v.(map[string]any); ok {
				set.add(variant["variantImg"])
			}
		}
	}

	return set
}

func (s urlSet) add(v any) {
	if u, ok := v.(string); ok && u != "" {
		s[u] = struct{}{}
	}
}

func (s urlSet) sorted() []string {
	list := make([]string, 0, len(s))
	for u := range s {
		list = append(list, u)
	}
	sort.Strings(list)
	return list
}
