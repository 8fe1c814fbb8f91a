package seed

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// File is the YAML structure of an org-chart seed.
type File struct {
	Members     []MemberSeed     `yaml:"members"`
	Nodes       []NodeSeed       `yaml:"nodes"`
	Assignments []AssignmentSeed `yaml:"assignments,omitempty"`
}

// MemberSeed defines a team member.
type MemberSeed struct {
	ID       string   `yaml:"id"`
	Name     string   `yaml:"name"`
	Email    string   `yaml:"email,omitempty"`
	PhotoURL string   `yaml:"photo_url,omitempty"`
	RoleType string   `yaml:"role_type,omitempty"`
	Bio      string   `yaml:"bio,omitempty"`
	Skills   []string `yaml:"skills,omitempty"`
}

// NodeSeed defines a role node. An empty Parent marks a root.
type NodeSeed struct {
	ID          string `yaml:"id"`
	Parent      string `yaml:"parent,omitempty"`
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
}

// AssignmentSeed places a member on a node.
type AssignmentSeed struct {
	Node   string `yaml:"node"`
	Member string `yaml:"member"`
}

// Parse decodes a seed document.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing seed: %w", err)
	}
	return &f, nil
}
