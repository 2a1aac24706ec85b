package api

import (
	"encoding/json"
	"net/http"
	"sort"
	"sync"

	"github.com/skeinlab/skein/pkg/cache"
	"github.com/skeinlab/skein/pkg/diagram"
	skerrors "github.com/skeinlab/skein/pkg/errors"
	"github.com/skeinlab/skein/pkg/explore"
)

// resolveDiagram turns a request's start field into a diagram: a named
// diagram or a signature.
func resolveDiagram(arg string) (*diagram.Diagram, error) {
	if skerrors.ValidateDiagramName(arg) == nil {
		if d, err := diagram.ByName(arg); err == nil {
			return d, nil
		}
	}
	if err := skerrors.ValidateSignatureInput(arg); err != nil {
		return nil, err
	}
	d, err := diagram.FromSignature(arg)
	if err != nil {
		return nil, skerrors.Wrap(skerrors.ErrCodeInvalidSignature, err, "cannot parse %q", arg)
	}
	return d, nil
}

// exploreRequest is the body of POST /api/v1/explore.
type exploreRequest struct {
	Start   string `json:"start"`
	MaxSize int    `json:"max_size,omitempty"`
	Limit   int    `json:"limit,omitempty"`
}

// exploreResponse is the result of an exploration run.
type exploreResponse struct {
	Start    string   `json:"start"`
	MaxSize  int      `json:"max_size"`
	Status   string   `json:"status"`
	Visited  int      `json:"visited"`
	Levels   int      `json:"levels"`
	Diagrams []string `json:"diagrams,omitempty"`
}

// maxReturnedDiagrams bounds the signature list in responses; the full
// set belongs in a census store, not a JSON body.
const maxReturnedDiagrams = 1000

func (s *Server) handleExplore(w http.ResponseWriter, r *http.Request) {
	var req exploreRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	start, err := resolveDiagram(req.Start)
	if err != nil {
		s.writeError(w, err)
		return
	}
	maxSize := req.MaxSize
	if maxSize <= 0 {
		maxSize = s.defaultSize
	}

	startSig := start.Signature()
	key := cache.ExploreKey(startSig, maxSize)
	if data, hit, err := s.cache.Get(r.Context(), key); err == nil && hit {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	// found counts every discovery; sigs stops growing at the response
	// cap, so the limit must not be checked against it.
	var (
		mu    sync.Mutex
		sigs  []string
		found int
	)
	visit := func(sig string, d *diagram.Diagram) bool {
		mu.Lock()
		defer mu.Unlock()
		found++
		if len(sigs) < s.maxList {
			sigs = append(sigs, sig)
		}
		return req.Limit > 0 && found >= req.Limit
	}

	res, err := explore.Run(r.Context(), start, diagram.Space{}, visit, explore.Options{
		MaxSize: maxSize,
		Logger:  s.logger,
	})
	if err != nil {
		s.writeError(w, skerrors.Wrap(skerrors.ErrCodeInternal, err, "exploration failed"))
		return
	}
	sort.Strings(sigs)

	resp := exploreResponse{
		Start:    startSig,
		MaxSize:  maxSize,
		Status:   res.Status.String(),
		Visited:  res.Visited,
		Levels:   res.Levels,
		Diagrams: sigs,
	}
	// Only complete runs are cacheable; a limited run is a prefix.
	if res.Status == explore.Completed {
		if data, err := json.Marshal(resp); err == nil {
			_ = s.cache.Set(r.Context(), key, data, 0)
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// simplifyRequest is the body of POST /api/v1/simplify.
type simplifyRequest struct {
	Start string `json:"start"`
	Slack int    `json:"slack,omitempty"`
}

// simplifyResponse is the result of a simplification.
type simplifyResponse struct {
	Signature string `json:"signature"`
	Crossings int    `json:"crossings"`
	Writhe    int    `json:"writhe"`
	Original  int    `json:"original"`
}

func (s *Server) handleSimplify(w http.ResponseWriter, r *http.Request) {
	var req simplifyRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	d, err := resolveDiagram(req.Start)
	if err != nil {
		s.writeError(w, err)
		return
	}
	slack := req.Slack
	if slack < 0 || slack > 4 {
		slack = 2
	}

	original := d.Size()
	d.Reduce()

	var (
		mu      sync.Mutex
		best    = d.Size()
		bestSig = d.Signature()
	)
	visit := func(sig string, child *diagram.Diagram) bool {
		rd := child.Clone()
		rd.Reduce()
		mu.Lock()
		if rd.Size() < best {
			best, bestSig = rd.Size(), rd.Signature()
		}
		mu.Unlock()
		return false
	}

	if _, err := explore.Run(r.Context(), d, diagram.Space{}, visit, explore.Options{
		MaxSize: d.Size() + slack,
		Logger:  s.logger,
	}); err != nil {
		s.writeError(w, skerrors.Wrap(skerrors.ErrCodeInternal, err, "simplification failed"))
		return
	}

	reduced, err := diagram.FromSignature(bestSig)
	if err != nil {
		s.writeError(w, skerrors.Wrap(skerrors.ErrCodeInternal, err, "re-decode failed"))
		return
	}
	writeJSON(w, http.StatusOK, simplifyResponse{
		Signature: bestSig,
		Crossings: reduced.Size(),
		Writhe:    reduced.Writhe(),
		Original:  original,
	})
}

// infoRequest is the body of POST /api/v1/info.
type infoRequest struct {
	Start string `json:"start"`
}

// infoResponse describes a diagram.
type infoResponse struct {
	Signature  string `json:"signature"`
	Crossings  int    `json:"crossings"`
	Writhe     int    `json:"writhe"`
	Components int    `json:"components"`
	Strings    int    `json:"strings"`
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	var req infoRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	d, err := resolveDiagram(req.Start)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, infoResponse{
		Signature:  d.Signature(),
		Crossings:  d.Size(),
		Writhe:     d.Writhe(),
		Components: d.Components(),
		Strings:    d.Strings(),
	})
}
