package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"os"
	"sort"
	"time"

	kberr "flexkb/internal/errors"
)

// DefaultEmbedTimeout bounds a single embedding service call.
const DefaultEmbedTimeout = 30 * time.Second

// EmbedClient calls the external embedding service that encoded the
// vector index at build time. Safe for concurrent use.
type EmbedClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewEmbedClient builds a client for the service at baseURL, e.g.
// "http://localhost:8000".
func NewEmbedClient(baseURL string) *EmbedClient {
	return &EmbedClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: DefaultEmbedTimeout},
	}
}

type embedRequest struct {
	Texts []string `json:"texts"`
}

type embedResponse struct {
	Model   string      `json:"model"`
	Vectors [][]float32 `json:"vectors"`
	Dim     int         `json:"dim"`
}

// Embed encodes one text into an embedding vector.
func (c *EmbedClient) Embed(ctx context.Context, text string) ([]float32, error) {
	body, err := json.Marshal(embedRequest{Texts: []string{text}})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/embed", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, kberr.Wrap(kberr.EmbeddingUnavailable, "embedding service unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return nil, kberr.New(kberr.EmbeddingUnavailable,
			fmt.Sprintf("embedding service returned status %d: %s", resp.StatusCode, string(msg)))
	}

	var out embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, kberr.Wrap(kberr.EmbeddingUnavailable, "embedding response failed to parse", err)
	}
	if len(out.Vectors) == 0 {
		return nil, kberr.New(kberr.EmbeddingUnavailable, "embedding service returned no vectors")
	}

	return out.Vectors[0], nil
}

// Health probes the embedding service.
func (c *EmbedClient) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return kberr.Wrap(kberr.EmbeddingUnavailable, "embedding service unreachable", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return kberr.New(kberr.EmbeddingUnavailable,
			fmt.Sprintf("embedding service unhealthy: status %d", resp.StatusCode))
	}
	return nil
}

// VectorItem is the metadata stored alongside one embedding.
type VectorItem struct {
	Source      string   `json:"source"`
	Entity      string   `json:"entity"`
	Name        string   `json:"name"`
	Type        ItemKind `json:"type"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty"`
	Signature   string   `json:"signature,omitempty"`
}

// vectorDoc mirrors the embedding index document built offline.
type vectorDoc struct {
	Model   string       `json:"_model"`
	Dim     int          `json:"dim"`
	Items   []VectorItem `json:"items"`
	Vectors [][]float32  `json:"vectors"`
}

// VectorIndex holds the precomputed item embeddings. Vectors are
// L2-normalized at load so inner product equals cosine similarity.
// Immutable after load.
type VectorIndex struct {
	Model   string
	Dim     int
	items   []VectorItem
	vectors [][]float32
}

// LoadVectorIndex reads the embedding index document. A missing file
// is reported as IndexMissing; the caller degrades to lexical search.
func LoadVectorIndex(path string, logger *slog.Logger) (*VectorIndex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, kberr.Wrap(kberr.IndexMissing, fmt.Sprintf("vector index not found at %s", path), err)
		}
		return nil, err
	}

	var doc vectorDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, kberr.Wrap(kberr.MalformedInput, "vector index failed to parse", err)
	}
	if len(doc.Items) != len(doc.Vectors) {
		return nil, kberr.New(kberr.MalformedInput,
			fmt.Sprintf("vector index has %d items but %d vectors", len(doc.Items), len(doc.Vectors)))
	}

	for i := range doc.Vectors {
		normalize(doc.Vectors[i])
	}

	logger.Info("Vector index loaded",
		"model", doc.Model, "dim", doc.Dim, "items", len(doc.Items))

	return &VectorIndex{
		Model:   doc.Model,
		Dim:     doc.Dim,
		items:   doc.Items,
		vectors: doc.Vectors,
	}, nil
}

// Len returns the number of indexed items.
func (v *VectorIndex) Len() int {
	if v == nil {
		return 0
	}
	return len(v.items)
}

// scored pairs an item index with its similarity.
type scored struct {
	idx   int
	score float64
}

// Search returns up to k items nearest to the query vector by inner
// product, filtered by source when sourceFilter is not "all".
func (v *VectorIndex) Search(query []float32, k int, sourceFilter string) []Item {
	if v == nil || len(v.vectors) == 0 || len(query) == 0 {
		return nil
	}
	q := make([]float32, len(query))
	copy(q, query)
	normalize(q)

	// Retrieve extra candidates so source filtering cannot starve
	// the result set.
	retrieve := k * 3
	if retrieve > len(v.vectors) {
		retrieve = len(v.vectors)
	}

	candidates := make([]scored, 0, len(v.vectors))
	for i, vec := range v.vectors {
		candidates = append(candidates, scored{idx: i, score: dot(q, vec)})
	}
	sort.SliceStable(candidates, func(a, b int) bool {
		return candidates[a].score > candidates[b].score
	})

	out := make([]Item, 0, k)
	for _, c := range candidates[:retrieve] {
		item := v.items[c.idx]
		if sourceFilter != "all" && item.Source != sourceFilter {
			continue
		}
		desc := item.Description
		if len(desc) > 150 {
			desc = desc[:150]
		}
		out = append(out, Item{
			Score:       c.score,
			Source:      item.Source,
			Entity:      item.Entity,
			Name:        item.Name,
			Type:        item.Type,
			Signature:   item.Signature,
			Description: desc,
			Category:    item.Category,
		})
		if len(out) >= k {
			break
		}
	}
	return out
}

func dot(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

func normalize(v []float32) {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return
	}
	inv := 1 / math.Sqrt(sum)
	for i := range v {
		v[i] = float32(float64(v[i]) * inv)
	}
}
