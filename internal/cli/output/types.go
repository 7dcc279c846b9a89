package output

// OrderOutput is the JSON payload for the order command.
type OrderOutput struct {
	Order []string `json:"order"`
}

// GraphNode is one object in the graph command's JSON output.
type GraphNode struct {
	Name      string   `json:"name"`
	Kind      string   `json:"kind"`
	DependsOn []string `json:"depends_on,omitempty"`
	UsedBy    []string `json:"used_by,omitempty"`
}

// GraphLevel groups objects at the same dependency depth.
type GraphLevel struct {
	Level   int         `json:"level"`
	Objects []GraphNode `json:"objects"`
}

// GraphOutput is the JSON payload for the graph command.
type GraphOutput struct {
	Levels       []GraphLevel `json:"levels"`
	TotalObjects int          `json:"total_objects"`
	TotalEdges   int          `json:"total_edges"`
	DiagramFile  string       `json:"diagram_file,omitempty"`
}
