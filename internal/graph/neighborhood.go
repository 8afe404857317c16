package graph

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"
)

// FileNode represents a file node in a dependency neighborhood.
type FileNode struct {
	Path           string `json:"path"`
	Dir            string `json:"dir"`
	Classification string `json:"classification"`
	PrimaryModule  string `json:"primary_module"`
}

// FileEdge represents one DEPENDS_ON relationship in a neighborhood.
type FileEdge struct {
	SourcePath string `json:"source_path"`
	TargetPath string `json:"target_path"`
}

// NeighborhoodResult contains the result of a neighborhood query.
type NeighborhoodResult struct {
	Nodes    []FileNode `json:"nodes"`
	Edges    []FileEdge `json:"edges"`
	RootPath string     `json:"root_path"`
}

// Neighborhood queries the Neo4j graph for the dependency surroundings of one
// file within a run. Direction is "dependencies" (what the file needs),
// "dependents" (what needs the file), or anything else for both.
func (c *Client) Neighborhood(ctx context.Context, runID uuid.UUID, path, direction string, maxDepth int) (*NeighborhoodResult, error) {
	if maxDepth <= 0 || maxDepth > 10 {
		maxDepth = 3
	}

	session := c.Session(ctx)
	defer session.Close(ctx)

	var query string
	switch direction {
	case "dependencies":
		query = fmt.Sprintf(DependencyDownstream, maxDepth)
	case "dependents":
		query = fmt.Sprintf(DependencyUpstream, maxDepth)
	default:
		query = fmt.Sprintf(DependencyBoth, maxDepth, maxDepth)
	}

	result, err := neo4j.ExecuteRead(ctx, session, func(tx neo4j.ManagedTransaction) (any, error) {
		records, err := tx.Run(ctx, query, map[string]any{
			"fileKey": FileKey(runID, path),
		})
		if err != nil {
			return nil, err
		}

		nodeMap := make(map[string]FileNode)
		edgeSeen := make(map[string]bool)
		var edges []FileEdge

		for records.Next(ctx) {
			record := records.Record()
			pathVal, ok := record.Get("path")
			if !ok {
				continue
			}
			p, ok := pathVal.(dbtype.Path)
			if !ok {
				continue
			}

			elemToPath := make(map[string]string)
			for _, node := range p.Nodes {
				filePath, _ := node.Props["path"].(string)
				if filePath == "" {
					continue
				}
				elemToPath[node.ElementId] = filePath
				if _, exists := nodeMap[filePath]; exists {
					continue
				}
				dir, _ := node.Props["dir"].(string)
				class, _ := node.Props["classification"].(string)
				primary, _ := node.Props["primaryModule"].(string)
				nodeMap[filePath] = FileNode{
					Path:           filePath,
					Dir:            dir,
					Classification: class,
					PrimaryModule:  primary,
				}
			}

			for _, rel := range p.Relationships {
				src := elemToPath[rel.StartElementId]
				tgt := elemToPath[rel.EndElementId]
				if src == "" || tgt == "" {
					continue
				}
				key := src + "->" + tgt
				if edgeSeen[key] {
					continue
				}
				edgeSeen[key] = true
				edges = append(edges, FileEdge{SourcePath: src, TargetPath: tgt})
			}
		}

		if err := records.Err(); err != nil {
			return nil, err
		}

		nodes := make([]FileNode, 0, len(nodeMap))
		for _, n := range nodeMap {
			nodes = append(nodes, n)
		}

		return &NeighborhoodResult{
			Nodes:    nodes,
			Edges:    edges,
			RootPath: path,
		}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("neighborhood query: %w", err)
	}

	return result.(*NeighborhoodResult), nil
}
