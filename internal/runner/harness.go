package runner

// harnessScript is the Python wrapper executed around submitted module
// code. It mocks the flextoolslib surface, captures report output, and
// prints a JSON result after the marker line. Configuration constants
// are prepended by buildScript.
const harnessScript = `# -*- coding: utf-8 -*-
import sys
import json
import os
import traceback
import types

flextoolslib = types.ModuleType('flextoolslib')
flextoolslib.FTM_Name = "FTM_Name"
flextoolslib.FTM_Version = "FTM_Version"
flextoolslib.FTM_ModifiesDB = "FTM_ModifiesDB"
flextoolslib.FTM_Synopsis = "FTM_Synopsis"
flextoolslib.FTM_Description = "FTM_Description"
flextoolslib.FTM_Help = "FTM_Help"

class FlexToolsModuleClass:
    def __init__(self, runFunction=None, docs=None, configuration=None):
        self.runFunction = runFunction
        self.docs = docs or {}
        self.configuration = configuration or []

    def Run(self, project, report, modifyAllowed=False):
        if self.runFunction:
            self.runFunction(project, report, modifyAllowed)

    def Help(self):
        return self.docs.get(flextoolslib.FTM_Description, "")

flextoolslib.FlexToolsModuleClass = FlexToolsModuleClass
sys.modules['flextoolslib'] = flextoolslib

class SimpleReporter:
    INFO = 0
    WARNING = 1
    ERROR = 2
    BLANK = 3
    TYPE_NAMES = ["INFO", "WARNING", "ERROR", "BLANK"]

    def __init__(self):
        self.messages = []
        self.messageCounts = [0, 0, 0, 0]

    def _report(self, msg_type, msg, ref=None):
        if msg is not None and not isinstance(msg, str):
            msg = repr(msg)
        self.messages.append({
            "type": self.TYPE_NAMES[msg_type],
            "message": msg,
            "ref": ref
        })
        self.messageCounts[msg_type] += 1

    def Info(self, msg, ref=None):
        self._report(self.INFO, msg, ref)

    def Warning(self, msg, ref=None):
        self._report(self.WARNING, msg, ref)

    def Error(self, msg, ref=None):
        self._report(self.ERROR, msg, ref)

    def Blank(self):
        self._report(self.BLANK, "", None)

    def ProgressStart(self, max_val, msg=None):
        pass

    def ProgressUpdate(self, value):
        pass

    def ProgressStop(self):
        pass

    def FileURL(self, fname):
        import pathlib
        return pathlib.Path(os.path.abspath(fname)).as_uri()

def run_module():
    result = {
        "success": False,
        "project": PROJECT_NAME,
        "write_enabled": WRITE_ENABLED,
        "messages": [],
        "summary": {},
        "error": None
    }

    project = None
    try:
        from flexlibs import FLExInitialize, FLExCleanup, FLExProject

        FLExInitialize()

        project = FLExProject()
        try:
            project.OpenProject(projectName=PROJECT_NAME, writeEnabled=WRITE_ENABLED)
        except Exception as e:
            result["error"] = "Failed to open project '{}': {}".format(PROJECT_NAME, str(e))
            return result

        report = SimpleReporter()
        module_namespace = {
            "__name__": "__flextools_module__",
            "__file__": "module.py",
        }
        exec(MODULE_CODE, module_namespace)

        if "Main" in module_namespace:
            module_namespace["Main"](project, report, WRITE_ENABLED)
        elif "FlexToolsModule" in module_namespace:
            module_namespace["FlexToolsModule"].Run(project, report, WRITE_ENABLED)
        else:
            result["error"] = "Module code must define either 'Main' function or 'FlexToolsModule'"
            return result

        result["success"] = True
        result["messages"] = report.messages
        result["summary"] = {
            "info_count": report.messageCounts[SimpleReporter.INFO],
            "warning_count": report.messageCounts[SimpleReporter.WARNING],
            "error_count": report.messageCounts[SimpleReporter.ERROR],
            "total_messages": len(report.messages)
        }

    except Exception as e:
        result["error"] = "Execution error: {}\n{}".format(str(e), traceback.format_exc())

    finally:
        if project:
            try:
                project.CloseProject()
            except Exception:
                pass
        try:
            FLExCleanup()
        except Exception:
            pass

    return result

if __name__ == "__main__":
    result = run_module()
    print("===FLEXKB_RESULT_JSON===")
    print(json.dumps(result, ensure_ascii=False))
`
