package mcp

// Tool represents a flexkb tool exposed via MCP
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// ToolHandler is a function that handles a tool call. The result is
// marshaled to JSON and returned as text content.
type ToolHandler func(params map[string]interface{}) (interface{}, error)

// GetToolDefinitions returns all tool definitions
func (s *MCPServer) GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "get_object_api",
			Description: "Get methods and properties for a FlexTools/LibLCM object like ILexEntry, LexSenseOperations, etc. Use summary_only=true first to see available methods, then request specific methods by name.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"object_type": map[string]interface{}{
						"type":        "string",
						"description": "The object type to look up (e.g., 'ILexEntry', 'LexEntryOperations', 'ILexSense')",
					},
					"include_flexlibs2": map[string]interface{}{
						"type":        "boolean",
						"description": "Include FlexLibs 2.0 wrapper methods (default: true)",
						"default":     true,
					},
					"include_liblcm": map[string]interface{}{
						"type":        "boolean",
						"description": "Include raw LibLCM interface info (default: true)",
						"default":     true,
					},
					"summary_only": map[string]interface{}{
						"type":        "boolean",
						"description": "Return only method/property names without full details (default: false). Use this first to explore large objects.",
						"default":     false,
					},
					"method_filter": map[string]interface{}{
						"type":        "string",
						"description": "Filter to methods containing this substring (case-insensitive)",
					},
					"limit": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum number of methods to return (default: 50)",
						"default":     50,
					},
					"offset": map[string]interface{}{
						"type":        "integer",
						"description": "Number of methods to skip for pagination (default: 0)",
						"default":     0,
					},
				},
				"required": []string{"object_type"},
			},
		},
		{
			Name:        "search_by_capability",
			Description: "Search for methods/functions by what they do. Use natural language queries like 'add gloss to sense', 'create new entry', 'get all entries'. Supports different API modes with fallback behavior.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"query": map[string]interface{}{
						"type":        "string",
						"description": "Natural language description of what you want to do",
					},
					"max_results": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum number of results to return (default: 10)",
						"default":     10,
					},
					"api_mode": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"flexlibs2", "flexlibs_stable", "liblcm", "all"},
						"description": "API mode: 'flexlibs2' (recommended, searches FlexLibs 2.0 primarily), 'flexlibs_stable' (searches stable API with LibLCM fallback), 'liblcm' (raw C# API only), 'all' (search everything). Default: 'all'",
						"default":     "all",
					},
					"no_semantic": map[string]interface{}{
						"type":        "boolean",
						"description": "Skip vector search and use keyword matching only (default: false)",
						"default":     false,
					},
				},
				"required": []string{"query"},
			},
		},
		{
			Name:        "get_navigation_path",
			Description: "Find how to navigate from one object type to another in the FieldWorks data model. For example, how to get from ILexEntry to ILexExampleSentence.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"from_object": map[string]interface{}{
						"type":        "string",
						"description": "Starting object type (e.g., 'ILexEntry')",
					},
					"to_object": map[string]interface{}{
						"type":        "string",
						"description": "Target object type (e.g., 'ILexExampleSentence')",
					},
				},
				"required": []string{"from_object", "to_object"},
			},
		},
		{
			Name:        "find_examples",
			Description: "Find code examples for a specific method or operation type.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"method_name": map[string]interface{}{
						"type":        "string",
						"description": "Specific method name to find examples for",
					},
					"operation_type": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"create", "read", "update", "delete", "iterate", "search"},
						"description": "Type of operation to find examples for",
					},
					"object_type": map[string]interface{}{
						"type":        "string",
						"description": "Object type to filter examples (e.g., 'LexEntry', 'Sense')",
					},
					"max_results": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum number of examples to return (default: 5)",
						"default":     5,
					},
				},
			},
		},
		{
			Name:        "list_categories",
			Description: "List all available API categories (lexicon, grammar, texts, etc.) with their entity counts.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "list_entities_in_category",
			Description: "List all entities (classes/interfaces) in a specific category.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"category": map[string]interface{}{
						"type":        "string",
						"description": "Category name (e.g., 'lexicon', 'grammar', 'texts')",
					},
				},
				"required": []string{"category"},
			},
		},
		{
			Name:        "get_module_template",
			Description: "Get the official FlexTools module template for creating new FlexTools scripts. Returns a ready-to-use Python template with the correct structure, imports, and documentation format.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"module_name": map[string]interface{}{
						"type":        "string",
						"description": "Name for the new module (e.g., 'Export Custom Data')",
					},
					"synopsis": map[string]interface{}{
						"type":        "string",
						"description": "Short description of what the module does",
					},
					"modifies_db": map[string]interface{}{
						"type":        "boolean",
						"description": "Whether the module modifies the database (default: false)",
						"default":     false,
					},
				},
			},
		},
		{
			Name:        "run_module",
			Description: "Execute a FlexTools module against a FieldWorks project using FlexLibs directly. Returns the execution log. Defaults to read-only mode for safety. IMPORTANT: Always backup your project before running with write_enabled=true.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"module_code": map[string]interface{}{
						"type":        "string",
						"description": "The complete FlexTools module Python code to execute",
					},
					"project_name": map[string]interface{}{
						"type":        "string",
						"description": "Name of the FieldWorks project to open (e.g., 'Sena 3')",
					},
					"write_enabled": map[string]interface{}{
						"type":        "boolean",
						"description": "Enable write access to the database. Default is false (read-only/dry-run mode). WARNING: Set to true only after testing!",
						"default":     false,
					},
					"timeout_seconds": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum execution time in seconds (default: 300)",
						"default":     300,
					},
				},
				"required": []string{"module_code", "project_name"},
			},
		},
		{
			Name:        "get_recommendations",
			Description: "Get learned API usage guidance: patterns that have worked reliably, patterns to avoid, and recurring errors with examples.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "refresh_index",
			Description: "Reload the API documentation, navigation graph, and search indexes from disk without restarting the server.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "get_status",
			Description: "Get knowledge base status: loaded corpora, graph size, cache entries, semantic search availability, and learned pattern counts.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
	}
}

// RegisterTools registers all tool handlers
func (s *MCPServer) RegisterTools() {
	s.tools["get_object_api"] = s.toolGetObjectAPI
	s.tools["search_by_capability"] = s.toolSearchByCapability
	s.tools["get_navigation_path"] = s.toolGetNavigationPath
	s.tools["find_examples"] = s.toolFindExamples
	s.tools["list_categories"] = s.toolListCategories
	s.tools["list_entities_in_category"] = s.toolListEntitiesInCategory
	s.tools["get_module_template"] = s.toolGetModuleTemplate
	s.tools["run_module"] = s.toolRunModule
	s.tools["get_recommendations"] = s.toolGetRecommendations
	s.tools["refresh_index"] = s.toolRefreshIndex
	s.tools["get_status"] = s.toolGetStatus
}
