// Package registry organizes chat sessions into the sidebar's buckets:
// a favorites overlay on top of a project/unfiled partition. The backend
// owns the data; Organize is a pure derivation over a flat snapshot, so
// a reload swaps the whole view atomically and never edits it in place.
package registry

import (
	"sort"
	"time"

	"github.com/citedapp/cited/internal/api"
)

// ChatSummary is one session as shown in the sidebar.
type ChatSummary struct {
	ID        string
	Name      string
	ProjectID string // empty means unfiled
	Favorite  bool
	Summary   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Project is a named grouping of sessions.
type Project struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
}

// ProjectGroup pairs a project with its member chats.
type ProjectGroup struct {
	Project Project
	Chats   []ChatSummary
}

// View is the organized listing. A favorite chat appears both in
// Favorites and in its project or unfiled bucket; Favorites is an
// overlay, not part of the partition.
type View struct {
	Favorites []ChatSummary
	Projects  []ProjectGroup
	Unfiled   []ChatSummary
}

// Organize derives a view from a flat snapshot. Projects order newest
// first; chats within every bucket order by most recent activity. A chat
// referencing an unknown project falls into the unfiled bucket rather
// than disappearing.
func Organize(chats []ChatSummary, projects []Project) View {
	known := make(map[string]bool, len(projects))
	for _, p := range projects {
		known[p.ID] = true
	}

	var view View
	byProject := make(map[string][]ChatSummary)

	for _, c := range chats {
		if c.Favorite {
			view.Favorites = append(view.Favorites, c)
		}
		if c.ProjectID != "" && known[c.ProjectID] {
			byProject[c.ProjectID] = append(byProject[c.ProjectID], c)
		} else {
			view.Unfiled = append(view.Unfiled, c)
		}
	}

	sortChats(view.Favorites)
	sortChats(view.Unfiled)

	ordered := make([]Project, len(projects))
	copy(ordered, projects)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.After(ordered[j].CreatedAt)
	})

	for _, p := range ordered {
		group := ProjectGroup{Project: p, Chats: byProject[p.ID]}
		sortChats(group.Chats)
		view.Projects = append(view.Projects, group)
	}

	return view
}

func sortChats(chats []ChatSummary) {
	sort.SliceStable(chats, func(i, j int) bool {
		return chats[i].UpdatedAt.After(chats[j].UpdatedAt)
	})
}

// FromWire flattens the backend listing and re-derives the view locally,
// so sorting and bucket rules stay consistent whatever the wire order.
// The chat listing only carries projects that have members, so the
// separate project listing rides along to keep empty projects visible.
func FromWire(list *api.ChatList, projectList []api.ProjectInfo) View {
	seen := make(map[string]bool)
	var chats []ChatSummary
	var projects []Project

	knownProjects := make(map[string]bool, len(projectList))
	for _, p := range projectList {
		knownProjects[p.ID] = true
		projects = append(projects, projectFromWire(p))
	}

	add := func(info api.ChatInfo) {
		if seen[info.SessionID] {
			return
		}
		seen[info.SessionID] = true
		chats = append(chats, chatFromWire(info))
	}

	for _, info := range list.NoProject {
		add(info)
	}
	for _, bucket := range list.Projects {
		if !knownProjects[bucket.Project.ID] {
			knownProjects[bucket.Project.ID] = true
			projects = append(projects, projectFromWire(bucket.Project))
		}
		for _, info := range bucket.Chats {
			add(info)
		}
	}
	// Favorites duplicate entries from the partition; anything here that
	// was not seen yet still belongs in the flat snapshot.
	for _, info := range list.Favorites {
		add(info)
	}

	return Organize(chats, projects)
}

func projectFromWire(p api.ProjectInfo) Project {
	return Project{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   parseTime(p.CreatedAt),
	}
}

func chatFromWire(info api.ChatInfo) ChatSummary {
	projectID := ""
	if info.ProjectID != nil {
		projectID = *info.ProjectID
	}
	return ChatSummary{
		ID:        info.SessionID,
		Name:      info.Name,
		ProjectID: projectID,
		Favorite:  info.IsFavorite,
		Summary:   info.Summary,
		CreatedAt: parseTime(info.CreatedAt),
		UpdatedAt: parseTime(info.UpdatedAt),
	}
}

// parseTime accepts the backend's ISO-8601 stamps with or without zone.
func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05.999999", "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Lookup finds a chat anywhere in the view by session ID.
func (v View) Lookup(id string) (ChatSummary, bool) {
	for _, c := range v.Unfiled {
		if c.ID == id {
			return c, true
		}
	}
	for _, g := range v.Projects {
		for _, c := range g.Chats {
			if c.ID == id {
				return c, true
			}
		}
	}
	for _, c := range v.Favorites {
		if c.ID == id {
			return c, true
		}
	}
	return ChatSummary{}, false
}

// Count returns the number of distinct chats in the partition. Favorites
// are an overlay and do not add to the count.
func (v View) Count() int {
	n := len(v.Unfiled)
	for _, g := range v.Projects {
		n += len(g.Chats)
	}
	return n
}

// ProjectByID finds a project in the view.
func (v View) ProjectByID(id string) (Project, bool) {
	for _, g := range v.Projects {
		if g.Project.ID == id {
			return g.Project, true
		}
	}
	return Project{}, false
}
