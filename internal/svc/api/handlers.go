// If you are AI: This file implements the read-only HTTP API handlers.
// Handlers read the container under the document read lock and never keep it.

package api

import (
	"net/http"
	"runtime"

	"flvedit/internal/core/container"
	"flvedit/internal/core/fieldtree"
	"flvedit/internal/core/protocol/flv"
)

// ServerResponse represents the /api/server response.
type ServerResponse struct {
	Version         string   `json:"version"`
	Uptime          int64    `json:"uptime"` // seconds
	GoVersion       string   `json:"go_version"`
	Documents       int      `json:"documents"`
	Watched         []string `json:"watched"` // documents with event listeners
	EnabledServices []string `json:"enabled_services"`
}

// DocumentInfo describes one open document.
type DocumentInfo struct {
	Name      string   `json:"name"`
	Path      string   `json:"path"`
	Size      int64    `json:"size"`
	HasHeader bool     `json:"has_header"`
	HasAudio  bool     `json:"has_audio"`
	HasVideo  bool     `json:"has_video"`
	Tags      int      `json:"tags"`
	Issues    []string `json:"issues"`
}

// DocumentsResponse represents the /api/documents response.
type DocumentsResponse struct {
	Documents []DocumentInfo `json:"documents"`
}

// TagInfo is one row of the tag list.
type TagInfo struct {
	Index     int    `json:"index"`
	Offset    int64  `json:"offset"`
	Size      int64  `json:"size"`
	Type      byte   `json:"type"`
	TypeName  string `json:"type_name"`
	DataSize  uint32 `json:"data_size"`
	Timestamp uint32 `json:"timestamp"`
	Keyframe  bool   `json:"keyframe,omitempty"`
	Summary   string `json:"summary"`
}

// TagsResponse represents the /api/tags response.
type TagsResponse struct {
	Doc  string    `json:"doc"`
	Tags []TagInfo `json:"tags"`
}

// TreeNode is the JSON form of a field tree node.
type TreeNode struct {
	Name     string     `json:"name"`
	Offset   int64      `json:"offset"`
	Size     uint32     `json:"size"`
	Value    string     `json:"value"`
	Children []TreeNode `json:"children,omitempty"`
}

// RawResponse represents the /api/raw response.
type RawResponse struct {
	Offset int64              `json:"offset"`
	Size   int                `json:"size"`
	Rows   []container.HexRow `json:"rows"`
}

// handleServer handles GET /api/server.
func (s *Service) handleServer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	response := ServerResponse{
		Version:         "1.0.0",
		Uptime:          getCurrentTime() - s.startTime,
		GoVersion:       runtime.Version(),
		Documents:       s.registry.Count(),
		Watched:         []string{},
		EnabledServices: []string{"inspect", "edit", "events", "download"},
	}
	if hub := s.registry.Hub(); hub != nil {
		response.Watched = hub.List()
	}
	s.writeJSON(w, http.StatusOK, response)
}

// handleDocuments handles GET /api/documents.
func (s *Service) handleDocuments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	names := s.registry.List()
	docs := make([]DocumentInfo, 0, len(names))
	for _, name := range names {
		doc, err := s.registry.Get(name)
		if err != nil {
			continue // closed meanwhile
		}
		info := DocumentInfo{Name: name, Path: doc.Path()}
		err = doc.View(func(ct *container.Container) error {
			info.Size = ct.Size()
			if h := ct.Header(); h != nil {
				info.HasHeader, info.HasAudio, info.HasVideo = true, h.HasAudio(), h.HasVideo()
			}
			info.Tags = ct.Len()
			info.Issues = make([]string, 0, len(ct.Issues()))
			for _, is := range ct.Issues() {
				info.Issues = append(info.Issues, is.String())
			}
			return nil
		})
		if err != nil {
			s.writeErr(w, err)
			return
		}
		docs = append(docs, info)
	}
	s.writeJSON(w, http.StatusOK, DocumentsResponse{Documents: docs})
}

// handleTags handles GET /api/tags?doc=.
func (s *Service) handleTags(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	doc, err := s.document(r)
	if err != nil {
		s.writeErr(w, err)
		return
	}

	response := TagsResponse{Doc: doc.Name()}
	err = doc.View(func(ct *container.Container) error {
		response.Tags = make([]TagInfo, 0, ct.Len())
		for i, t := range ct.Tags() {
			v := t.Video()
			response.Tags = append(response.Tags, TagInfo{
				Index:     i,
				Offset:    t.Offset,
				Size:      t.Size(),
				Type:      t.Type,
				TypeName:  flv.TagTypeName(t.Type),
				DataSize:  t.DataSize,
				Timestamp: t.Timestamp,
				Keyframe:  v != nil && v.IsKeyframe(),
				Summary:   container.Summary(t),
			})
		}
		return nil
	})
	if err != nil {
		s.writeErr(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, response)
}

// handleTree handles GET /api/tree?doc=&index= (or &header=1).
func (s *Service) handleTree(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	doc, err := s.document(r)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	header, index, err := target(r)
	if err != nil {
		s.writeErr(w, err)
		return
	}

	var node TreeNode
	err = doc.View(func(ct *container.Container) error {
		var tr *fieldtree.Tree
		var err error
		if header {
			tr, err = ct.HeaderTree()
		} else {
			tr, err = ct.Tree(index)
		}
		if err != nil {
			return err
		}
		node = toTreeNode(tr, tr.Root())
		return nil
	})
	if err != nil {
		s.writeErr(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, node)
}

// handleRaw handles GET /api/raw?doc=&index= (or &header=1).
func (s *Service) handleRaw(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	doc, err := s.document(r)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	header, index, err := target(r)
	if err != nil {
		s.writeErr(w, err)
		return
	}

	var response RawResponse
	err = doc.View(func(ct *container.Container) error {
		var data []byte
		var base int64
		if header {
			b, err := ct.HeaderBytes()
			if err != nil {
				return err
			}
			data = b
		} else {
			b, err := ct.TagBytes(index)
			if err != nil {
				return err
			}
			data, base = b, ct.Tags()[index].Offset
		}
		response = RawResponse{Offset: base, Size: len(data), Rows: container.HexRows(data, base)}
		return nil
	})
	if err != nil {
		s.writeErr(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, response)
}

// toTreeNode converts the subtree rooted at id.
func toTreeNode(tr *fieldtree.Tree, id int) TreeNode {
	n := tr.Node(id)
	out := TreeNode{Name: n.Name, Offset: n.Offset, Size: n.Size, Value: n.Display()}
	for _, c := range tr.Children(id) {
		out.Children = append(out.Children, toTreeNode(tr, c))
	}
	return out
}
