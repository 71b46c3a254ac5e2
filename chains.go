package main

import "strings"

// Hop is one step in a CNAME chain. EXTERNAL hops mark a target that has no
// record in the mirror, with Name carrying the unresolved target.
type Hop struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	Content string `json:"content"`
}

// Chain is an ordered walk from a CNAME record to its endpoint.
type Chain []Hop

const externalContent = "External Resource"

// ResolveChains walks every CNAME record in the snapshot to its endpoint and
// groups the resulting chains by the originating record's zone name. The walk
// skips records already on the chain, so cycles truncate instead of looping.
// A target with no bucket match after one trailing-dot retry ends the chain
// with an EXTERNAL hop. The literal target "@" stops resolution; it is not
// expanded to the zone apex.
func ResolveChains(zones []Zone, records []Record) map[string][]Chain {
	nameBuckets := make(map[string][]Record)
	for _, r := range records {
		nameBuckets[r.Name] = append(nameBuckets[r.Name], r)
	}
	zoneNames := make(map[string]string, len(zones))
	for _, z := range zones {
		zoneNames[z.ID] = z.Name
	}

	chainsByZone := make(map[string][]Chain)
	for _, r := range records {
		if r.Type != "CNAME" {
			continue
		}

		chain := Chain{{ID: r.ID, Name: r.Name, Type: r.Type, Content: r.Content}}
		visited := map[string]bool{r.ID: true}

		nextName := r.Content
		if nextName == "@" {
			nextName = ""
		}
		for nextName != "" {
			bucket, ok := nameBuckets[nextName]
			if !ok {
				// CNAME targets carry the trailing dot inconsistently; retry
				// once with it toggled.
				bucket, ok = nameBuckets[toggleDot(nextName)]
			}
			if !ok {
				chain = append(chain, Hop{
					ID:      "EXTERNAL",
					Name:    nextName,
					Type:    "EXTERNAL",
					Content: externalContent,
				})
				break
			}

			nextName = ""
			for _, t := range bucket {
				if visited[t.ID] {
					continue
				}
				visited[t.ID] = true
				chain = append(chain, Hop{ID: t.ID, Name: t.Name, Type: t.Type, Content: t.Content})
				if t.Type == "CNAME" && t.Content != "@" {
					nextName = t.Content
				}
				break
			}
			// An exhausted bucket (every member visited) leaves nextName
			// empty and the chain ends without an external marker.
		}

		zoneName, ok := zoneNames[r.ZoneID]
		if !ok {
			zoneName = "Unknown Zone"
		}
		chainsByZone[zoneName] = append(chainsByZone[zoneName], chain)
	}
	return chainsByZone
}

func toggleDot(name string) string {
	if strings.HasSuffix(name, ".") {
		return strings.TrimSuffix(name, ".")
	}
	return name + "."
}
