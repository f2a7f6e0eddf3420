package mcp

import (
	"context"
	"fmt"
	"time"

	"flexkb/internal/query"
	"flexkb/internal/runner"
	"flexkb/internal/search"
)

// stringParam extracts an optional string parameter.
func stringParam(params map[string]interface{}, key string) string {
	v, _ := params[key].(string)
	return v
}

// boolParam extracts a boolean parameter with a default.
func boolParam(params map[string]interface{}, key string, def bool) bool {
	if v, ok := params[key].(bool); ok {
		return v
	}
	return def
}

// intParam extracts an integer parameter with a default. JSON numbers
// arrive as float64.
func intParam(params map[string]interface{}, key string, def int) int {
	switch v := params[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return def
}

// toolGetObjectAPI implements the get_object_api tool
func (s *MCPServer) toolGetObjectAPI(params map[string]interface{}) (interface{}, error) {
	objectType := stringParam(params, "object_type")
	if objectType == "" {
		return nil, &RPCError{Code: InvalidParams, Message: "missing or invalid 'object_type' parameter"}
	}

	result := s.engine.GetObjectAPI(query.ObjectRequest{
		ObjectType:       objectType,
		IncludeFlexlibs2: boolParam(params, "include_flexlibs2", true),
		IncludeLiblcm:    boolParam(params, "include_liblcm", true),
		SummaryOnly:      boolParam(params, "summary_only", false),
		MethodFilter:     stringParam(params, "method_filter"),
		Limit:            intParam(params, "limit", query.DefaultMethodLimit),
		Offset:           intParam(params, "offset", 0),
	})

	return result, nil
}

// toolSearchByCapability implements the search_by_capability tool
func (s *MCPServer) toolSearchByCapability(params map[string]interface{}) (interface{}, error) {
	q := stringParam(params, "query")
	if q == "" {
		return nil, &RPCError{Code: InvalidParams, Message: "missing or invalid 'query' parameter"}
	}

	resp := s.engine.Search(context.Background(), search.Request{
		Query:      q,
		MaxResults: intParam(params, "max_results", search.DefaultMaxResults),
		Mode:       search.Mode(stringParam(params, "api_mode")),
		NoSemantic: boolParam(params, "no_semantic", false),
	})

	return resp, nil
}

// toolGetNavigationPath implements the get_navigation_path tool
func (s *MCPServer) toolGetNavigationPath(params map[string]interface{}) (interface{}, error) {
	from := stringParam(params, "from_object")
	to := stringParam(params, "to_object")
	if from == "" || to == "" {
		return nil, &RPCError{Code: InvalidParams, Message: "missing 'from_object' or 'to_object' parameter"}
	}

	return s.engine.FindPath(from, to), nil
}

// toolFindExamples implements the find_examples tool
func (s *MCPServer) toolFindExamples(params map[string]interface{}) (interface{}, error) {
	result := s.engine.FindExamples(query.ExamplesRequest{
		MethodName:    stringParam(params, "method_name"),
		OperationType: stringParam(params, "operation_type"),
		ObjectType:    stringParam(params, "object_type"),
		MaxResults:    intParam(params, "max_results", 5),
	})

	return result, nil
}

// toolListCategories implements the list_categories tool
func (s *MCPServer) toolListCategories(params map[string]interface{}) (interface{}, error) {
	return s.engine.ListCategories(), nil
}

// toolListEntitiesInCategory implements the list_entities_in_category tool
func (s *MCPServer) toolListEntitiesInCategory(params map[string]interface{}) (interface{}, error) {
	category := stringParam(params, "category")
	if category == "" {
		return nil, &RPCError{Code: InvalidParams, Message: "missing or invalid 'category' parameter"}
	}

	return s.engine.ListEntitiesInCategory(category), nil
}

// toolGetModuleTemplate implements the get_module_template tool
func (s *MCPServer) toolGetModuleTemplate(params map[string]interface{}) (interface{}, error) {
	return s.engine.ModuleTemplate(query.TemplateRequest{
		ModuleName: stringParam(params, "module_name"),
		Synopsis:   stringParam(params, "synopsis"),
		ModifiesDB: boolParam(params, "modifies_db", false),
	}), nil
}

// toolRunModule implements the run_module tool
func (s *MCPServer) toolRunModule(params map[string]interface{}) (interface{}, error) {
	if s.runner == nil {
		return nil, fmt.Errorf("module execution is not configured on this server")
	}

	code := stringParam(params, "module_code")
	project := stringParam(params, "project_name")
	if code == "" || project == "" {
		return nil, &RPCError{Code: InvalidParams, Message: "missing 'module_code' or 'project_name' parameter"}
	}

	job := runner.Job{
		Code:         code,
		Project:      project,
		WriteEnabled: boolParam(params, "write_enabled", false),
	}
	if secs := intParam(params, "timeout_seconds", 0); secs > 0 {
		job.Timeout = time.Duration(secs) * time.Second
	}

	result := s.runner.Run(context.Background(), job)

	return result, nil
}

// toolGetRecommendations implements the get_recommendations tool
func (s *MCPServer) toolGetRecommendations(params map[string]interface{}) (interface{}, error) {
	return s.engine.Recommendations(), nil
}

// toolRefreshIndex implements the refresh_index tool
func (s *MCPServer) toolRefreshIndex(params map[string]interface{}) (interface{}, error) {
	if err := s.engine.Reload(); err != nil {
		return nil, fmt.Errorf("failed to reload indexes: %w", err)
	}

	return map[string]interface{}{
		"reloaded": true,
		"status":   s.engine.Status(),
	}, nil
}

// toolGetStatus implements the get_status tool
func (s *MCPServer) toolGetStatus(params map[string]interface{}) (interface{}, error) {
	return s.engine.Status(), nil
}
