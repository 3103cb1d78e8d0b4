package codec

import "github.com/stork-search/stork/pkg/core"

func toWireIndex(idx *core.Index) wireIndex {
	documents := make([]wireDocument, len(idx.Documents))
	for i, d := range idx.Documents {
		documents[i] = wireDocument{
			Title:    d.Title,
			URL:      d.URL,
			Contents: d.Contents,
			Fields:   d.Fields,
		}
	}

	containers := make(map[string]wireContainer, len(idx.Containers))

	for word, c := range idx.Containers {
		results := make(map[uint32]wireContainerResult, len(c.Results))

		for docID, r := range c.Results {
			excerpts := make([]wirePosting, len(r.Excerpts))
			for i, p := range r.Excerpts {
				excerpts[i] = wirePosting{
					DocumentID:   p.DocumentID,
					ByteOffset:   p.ByteOffset,
					Importance:   p.Importance,
					URLSuffix:    p.URLSuffix,
					HasURLSuffix: p.HasURLSuffix,
				}
			}

			results[docID] = wireContainerResult{Excerpts: excerpts, Score: r.Score}
		}

		titleHits := make([]wireTitleHit, len(c.TitleHits))
		for i, th := range c.TitleHits {
			titleHits[i] = wireTitleHit{DocumentID: th.DocumentID, ByteOffset: th.ByteOffset}
		}

		containers[word] = wireContainer{Results: results, Aliases: c.Aliases, TitleHits: titleHits}
	}

	return wireIndex{
		Config: wirePassthroughConfig{
			URLPrefix:             idx.Config.URLPrefix,
			TitleBoost:            int(idx.Config.TitleBoost),
			ExcerptBuffer:         idx.Config.ExcerptBuffer,
			ExcerptsPerResult:     idx.Config.ExcerptsPerResult,
			DisplayedResultsCount: idx.Config.DisplayedResultsCount,
		},
		Documents:  documents,
		Containers: containers,
	}
}

func fromWireIndex(w wireIndex, version core.Version) *core.Index {
	documents := make([]core.Document, len(w.Documents))
	for i, d := range w.Documents {
		documents[i] = core.Document{
			ID:       uint32(i), //nolint:gosec // document counts fit comfortably in uint32
			Title:    d.Title,
			URL:      d.URL,
			Contents: d.Contents,
			Fields:   d.Fields,
		}
	}

	containers := make(map[string]*core.Container, len(w.Containers))

	for word, wc := range w.Containers {
		c := core.NewContainer()

		for docID, wr := range wc.Results {
			excerpts := make([]core.Posting, len(wr.Excerpts))
			for i, wp := range wr.Excerpts {
				excerpts[i] = core.Posting{
					DocumentID:   wp.DocumentID,
					ByteOffset:   wp.ByteOffset,
					Importance:   wp.Importance,
					URLSuffix:    wp.URLSuffix,
					HasURLSuffix: wp.HasURLSuffix,
				}
			}

			c.Results[docID] = &core.ContainerResult{Excerpts: excerpts, Score: wr.Score}
		}

		for k, v := range wc.Aliases {
			c.Aliases[k] = v
		}

		for _, th := range wc.TitleHits {
			c.TitleHits = append(c.TitleHits, core.TitleHit{DocumentID: th.DocumentID, ByteOffset: th.ByteOffset})
		}

		containers[word] = c
	}

	return &core.Index{
		Containers: containers,
		Documents:  documents,
		Version:    version,
		Config: core.PassthroughConfig{
			URLPrefix:             w.Config.URLPrefix,
			TitleBoost:            core.TitleBoost(w.Config.TitleBoost),
			ExcerptBuffer:         w.Config.ExcerptBuffer,
			ExcerptsPerResult:     w.Config.ExcerptsPerResult,
			DisplayedResultsCount: w.Config.DisplayedResultsCount,
		},
	}
}
