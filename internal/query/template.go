package query

import "fmt"

// TemplateRequest customizes the module scaffold.
type TemplateRequest struct {
	ModuleName string
	Synopsis   string
	ModifiesDB bool
}

// TemplateResult is the get_module_template answer.
type TemplateResult struct {
	Template      string   `json:"template"`
	Notes         []string `json:"notes"`
	ReportMethods []string `json:"report_methods"`
}

const moduleTemplate = `#
#   %s
#    - A FlexTools Module -
#
#   %s
#
#   Platforms: Python .NET and IronPython
#

from flextoolslib import *

#----------------------------------------------------------------
# Documentation that the user sees:

docs = {FTM_Name        : "%s",
        FTM_Version     : 1,
        FTM_ModifiesDB  : %s,
        FTM_Synopsis    : "%s",
        FTM_Description :
"""
<detailed description here>
""" }

#----------------------------------------------------------------
# The main processing function

def Main(project, report, modifyAllowed):
    """
    Main entry point for the FlexTools module.

    Args:
        project: FLExProject instance providing access to the FieldWorks database
        report: Reporter object for logging (report.Info, report.Warning, report.Error)
        modifyAllowed: Boolean indicating if database modifications are permitted
    """
    report.Info("Starting...")

    # Example: iterate all entries
    # for entry in project.LexiconAllEntries():
    #     headword = project.LexiconGetHeadword(entry)
    #     report.Info("Entry: {}".format(headword))

    report.Info("Done.")

#----------------------------------------------------------------

FlexToolsModule = FlexToolsModuleClass(Main, docs)

#----------------------------------------------------------------
if __name__ == '__main__':
    print(FlexToolsModule.Help())
`

// ModuleTemplate renders the FlexTools module scaffold with the
// requested name, synopsis, and write flag substituted.
func (e *Engine) ModuleTemplate(req TemplateRequest) TemplateResult {
	name := req.ModuleName
	if name == "" {
		name = "<Module name>"
	}
	synopsis := req.Synopsis
	if synopsis == "" {
		synopsis = "<description>"
	}
	modifies := "False"
	if req.ModifiesDB {
		modifies = "True"
	}

	return TemplateResult{
		Template: fmt.Sprintf(moduleTemplate, name, synopsis, name, modifies, synopsis),
		Notes: []string{
			"FTM_Version should be an integer (1, 2, 3...), not a string",
			"Main function must be named 'Main' (not 'MainFunction')",
			"Use .format() for string formatting (IronPython compatible), not f-strings",
			"Do not use type hints (IronPython does not support them)",
			"Do not use pathlib (use os.path instead for IronPython compatibility)",
			"FlexToolsModule = FlexToolsModuleClass(Main, docs) uses positional args",
		},
		ReportMethods: []string{
			"report.Info(message) - Informational message",
			"report.Warning(message) - Warning message",
			"report.Error(message) - Error message",
			"report.Blank() - Blank line",
			"report.FileURL(path) - Create clickable file link",
		},
	}
}
