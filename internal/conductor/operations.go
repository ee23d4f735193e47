package conductor

import (
	"fmt"
	"strconv"
)

// Command groups, in the order they appear in the help output
const (
	GroupEvent    = "event"
	GroupMetadata = "metadata"
	GroupAdmin    = "admin"
	GroupTask     = "task"
	GroupWorkflow = "workflow"
)

// Groups maps group IDs to their help titles
var Groups = []struct {
	ID    string
	Title string
}{
	{GroupEvent, "Event Services:"},
	{GroupMetadata, "Metadata Management:"},
	{GroupAdmin, "Admin:"},
	{GroupTask, "Task Management:"},
	{GroupWorkflow, "Workflow Management:"},
}

var (
	argEvent        = Arg{Name: "event", Usage: "Event Name"}
	argTaskType     = Arg{Name: "taskType", Usage: "Task Type (Name)"}
	argTaskID       = Arg{Name: "taskId", Usage: "Task Instance Id"}
	argWorkflowID   = Arg{Name: "workflowId", Usage: "Workflow Instance Id"}
	argWorkflowName = Arg{Name: "name", Usage: "Workflow Name"}

	flagWorkerID = Flag{Name: "workerid", Usage: "Id of Worker (String)"}
)

func countFlag(def int) Flag {
	return Flag{
		Name:    "count",
		Usage:   fmt.Sprintf("Query count (Positive integer value, default == %d)", def),
		Kind:    KindPositiveInt,
		Default: strconv.Itoa(def),
	}
}

func boolFlag(name, usage, def string) Flag {
	return Flag{
		Name:    name,
		Usage:   usage,
		Kind:    KindChoice,
		Default: def,
		Choices: booleanChoices,
	}
}

var operations = []Operation{
	// Event services
	{
		Name: "getAllEventHandlers", Group: GroupEvent,
		Short:  "Get all the Event Handlers",
		Method: "GET", Path: "/api/event",
	},
	{
		Name: "getEventHandler", Group: GroupEvent,
		Short:  "Get Event Handlers for a given event",
		Method: "GET", Path: "/api/event/{event}",
		Args:   []Arg{argEvent},
		Flags: []Flag{
			boolFlag("activeOnly", "Query only if active {true | false} (default == true)", "true"),
		},
	},
	{
		Name: "createEventHandler", Group: GroupEvent,
		Short:  "Create an Event Handler",
		Method: "POST", Path: "/api/event",
		Body: BodyRequired, BodyName: "body", BodyUsage: "Event Handler definition in JSON",
	},
	{
		Name: "modifyEventHandler", Group: GroupEvent,
		Short:  "Modify an Event Handler",
		Method: "PUT", Path: "/api/event",
		Body: BodyRequired, BodyName: "body", BodyUsage: "Event Handler definition in JSON",
	},
	{
		Name: "deleteEventHandler", Group: GroupEvent,
		Short:  "Delete an Event Handler",
		Method: "DELETE", Path: "/api/event/{name}",
		Args:   []Arg{{Name: "name", Usage: "Event Handler Name"}},
	},
	{
		Name: "getEventExecutions", Group: GroupEvent,
		Short:  "Get Event Executions of a handler for an event and message",
		Method: "GET", Path: "/api/event/executions/{eventHandlerName}/{eventName}/{messageId}",
		Args: []Arg{
			{Name: "eventHandlerName", Usage: "Event Handler Name"},
			{Name: "eventName", Usage: "Event Name"},
			{Name: "messageId", Usage: "Message Id"},
		},
		Flags: []Flag{{
			Name:    "max",
			Usage:   "Max number to query (Positive integer value, default == 100)",
			Kind:    KindPositiveInt,
			Default: "100",
		}},
	},
	{
		Name: "getRegisteredQueues", Group: GroupEvent,
		Short:  "Get the registered event queues",
		Method: "GET", Path: "/api/event/queues",
		Flags: []Flag{{
			Name:    "verbosity",
			Key:     "verbose",
			Usage:   "Verbosity {true | false} (default == false)",
			Kind:    KindChoice,
			Default: "false",
			Choices: booleanChoices,
		}},
	},
	{
		Name: "getRegisteredQueueProviders", Group: GroupEvent,
		Short:  "Get the registered event queue providers",
		Method: "GET", Path: "/api/event/queues/providers",
	},

	// Metadata management
	{
		Name: "getAllTaskMetadata", Group: GroupMetadata,
		Short:  "Get all the Task Definitions",
		Method: "GET", Path: "/api/metadata/taskdefs",
	},
	{
		Name: "createTaskMetadata", Group: GroupMetadata,
		Short:  "Create Task Definitions",
		Method: "POST", Path: "/api/metadata/taskdefs",
		Body: BodyRequired, BodyName: "metadata", BodyUsage: "Task Metadata definition(s) in JSON array",
	},
	{
		Name: "modifyTaskMetadata", Group: GroupMetadata,
		Short:  "Modify a Task Definition",
		Method: "PUT", Path: "/api/metadata/taskdefs",
		Body: BodyRequired, BodyName: "metadata", BodyUsage: "Task Metadata definition in JSON",
	},
	{
		Name: "deleteTaskMetadata", Group: GroupMetadata,
		Short:  "Delete a Task Definition",
		Method: "DELETE", Path: "/api/metadata/taskdefs/{taskType}",
		Args:   []Arg{argTaskType},
	},
	{
		Name: "getTaskMetadata", Group: GroupMetadata,
		Short:  "Get a Task Definition",
		Method: "GET", Path: "/api/metadata/taskdefs/{taskType}",
		Args:   []Arg{argTaskType},
	},
	{
		Name: "getAllWorkflowMetadata", Group: GroupMetadata,
		Short:  "Get all the Workflow Definitions",
		Method: "GET", Path: "/api/metadata/workflow",
	},
	{
		Name: "createWorkflowMetadata", Group: GroupMetadata,
		Short:  "Create a Workflow Definition",
		Method: "POST", Path: "/api/metadata/workflow",
		Body: BodyRequired, BodyName: "metadata", BodyUsage: "Workflow Metadata definition in JSON",
	},
	{
		Name: "modifyWorkflowMetadata", Group: GroupMetadata,
		Short:  "Modify Workflow Definitions",
		Method: "PUT", Path: "/api/metadata/workflow",
		Body: BodyRequired, BodyName: "metadata", BodyUsage: "Workflow Metadata definition in JSON",
	},
	{
		Name: "getWorkflowMetadata", Group: GroupMetadata,
		Short:  "Get a Workflow Definition",
		Method: "GET", Path: "/api/metadata/workflow/{name}",
		Args:   []Arg{argWorkflowName},
	},

	// Admin
	{
		Name: "getConfiguration", Group: GroupAdmin,
		Short:  "Get all the server configuration parameters",
		Method: "GET", Path: "/api/admin/config",
	},
	{
		Name: "sweepWorkflow", Group: GroupAdmin,
		Short:  "Queue up a running workflow for sweep",
		Method: "POST", Path: "/api/admin/sweep/requeue/{workflowId}",
		Args:   []Arg{argWorkflowID},
	},
	{
		Name: "getPendingTasks", Group: GroupAdmin,
		Short:  "Get the pending tasks for a task type",
		Method: "GET", Path: "/api/admin/task/{taskType}",
		Args:   []Arg{argTaskType},
		Flags: []Flag{
			{Name: "start", Usage: "Start time (Positive integer value)", Kind: KindPositiveInt},
			countFlag(100),
		},
	},

	// Task management
	{
		Name: "updateTask", Group: GroupTask,
		Short:  "Update a Task",
		Method: "POST", Path: "/api/tasks",
		Body: BodyRequired, BodyName: "body", BodyUsage: "Task information in JSON",
	},
	{
		Name: "getInProgressTask", Group: GroupTask,
		Short:  "Get the in progress tasks for a task type",
		Method: "GET", Path: "/api/tasks/in_progress/{taskType}",
		Args:   []Arg{argTaskType},
		Flags: []Flag{
			{Name: "startKey", Usage: "Start Key (String)"},
			countFlag(100),
		},
	},
	{
		Name: "getInProgressTaskForWorkflowInstance", Group: GroupTask,
		Short:  "Get the in progress task of a workflow instance by reference name",
		Method: "GET", Path: "/api/tasks/in_progress/{workflowInstanceId}/{taskRefName}",
		Args: []Arg{
			{Name: "workflowInstanceId", Usage: "Workflow Instance Id"},
			{Name: "taskRefName", Usage: "Task Reference Name"},
		},
	},
	{
		Name: "batchPollTask", Group: GroupTask,
		Short:  "Batch poll for tasks of a task type",
		Method: "GET", Path: "/api/tasks/poll/batch/{taskType}",
		Args:   []Arg{argTaskType},
		Flags: []Flag{
			flagWorkerID,
			countFlag(1),
			{
				Name:    "timeout",
				Usage:   "Timeout Value (Positive integer value, default == 100)",
				Kind:    KindPositiveInt,
				Default: "100",
			},
		},
	},
	{
		Name: "pollTask", Group: GroupTask,
		Short:  "Poll for a task of a task type",
		Method: "GET", Path: "/api/tasks/poll/{taskType}",
		Args:   []Arg{argTaskType},
		Flags:  []Flag{flagWorkerID},
	},
	{
		Name: "getTasksQueue", Group: GroupTask,
		Short:  "Get details about each queue",
		Method: "GET", Path: "/api/tasks/queue/all",
	},
	{
		Name: "getTasksQueueVerbose", Group: GroupTask,
		Short:  "Get verbose details about each queue",
		Method: "GET", Path: "/api/tasks/queue/all/verbose",
	},
	{
		Name: "requeueAllPendingTasks", Group: GroupTask,
		Short:  "Requeue pending tasks for all the running workflows",
		Method: "POST", Path: "/api/tasks/queue/requeue",
	},
	{
		Name: "requeuePendingTasks", Group: GroupTask,
		Short:  "Requeue pending tasks of a task type",
		Method: "POST", Path: "/api/tasks/queue/requeue/{taskType}",
		Args:   []Arg{argTaskType},
	},
	{
		Name: "getTaskTypeQueueSizes", Group: GroupTask,
		Short:  "Get the queue sizes of the given task types",
		Method: "POST", Path: "/api/tasks/queue/sizes",
		Body: BodyRequired, BodyName: "body", BodyUsage: "Body in JSON array",
	},
	{
		Name: "deleteTaskFromQueue", Group: GroupTask,
		Short:  "Remove a task from its queue",
		Method: "DELETE", Path: "/api/tasks/queue/{taskType}/{taskId}",
		Args:   []Arg{argTaskType, argTaskID},
	},
	{
		Name: "getTask", Group: GroupTask,
		Short:  "Get a Task Instance",
		Method: "GET", Path: "/api/tasks/{taskId}",
		Args:   []Arg{argTaskID},
	},
	{
		Name: "ackTask", Group: GroupTask,
		Short:  "Acknowledge a Task",
		Method: "POST", Path: "/api/tasks/{taskId}/ack",
		Args:   []Arg{argTaskID},
		Flags:  []Flag{flagWorkerID},
	},

	// Workflow management
	{
		Name: "startDecision", Group: GroupWorkflow,
		Short:  "Start the decision task for a workflow",
		Method: "PUT", Path: "/api/workflow/decide/{workflowId}",
		Args:   []Arg{argWorkflowID},
	},
	{
		Name: "getRunningWorkflows", Group: GroupWorkflow,
		Short:  "Get the running workflows with a given name",
		Method: "GET", Path: "/api/workflow/running/{name}",
		Args:   []Arg{argWorkflowName},
		Flags: []Flag{
			{Name: "startTime", Usage: "Start Time (Long value)"},
			{Name: "endTime", Usage: "End Time (Long value)"},
			{
				Name:    "version",
				Usage:   "Workflow Version (Positive integer value, default == 1)",
				Kind:    KindPositiveInt,
				Default: "1",
			},
		},
	},
	{
		Name: "searchWorkflows", Group: GroupWorkflow,
		Short:  "Search for workflows",
		Method: "GET", Path: "/api/workflow/search",
		Flags: []Flag{
			{Name: "start", Usage: "Start (Positive integer value)", Kind: KindPositiveInt},
			{
				Name:    "sort",
				Usage:   "Sort ascending (ASC) or descending (DESC)",
				Kind:    KindChoice,
				Choices: []string{"ASC", "DESC"},
			},
			{Name: "query", Usage: "Query (String value)"},
			{
				Name:    "size",
				Usage:   "Size (Positive integer value, default == 100)",
				Kind:    KindPositiveInt,
				Default: "100",
			},
			{Name: "freeText", Usage: "Free Text (String value, default == *)", Default: "*"},
		},
	},
	{
		Name: "startWorkflow", Group: GroupWorkflow,
		Short:  "Start a workflow, returns the workflow instance id",
		Method: "POST", Path: "/api/workflow/{name}",
		Args:   []Arg{argWorkflowName},
		Flags: []Flag{
			{Name: "version", Usage: "Workflow Version (Positive integer value)", Kind: KindPositiveInt},
			{Name: "correlationId", Usage: "Correlation Id (String value)"},
		},
		Body: BodyOptional, BodyUsage: "Workflow input in JSON format",
		ReturnsID: true,
	},
	{
		Name: "getWorkflowByCorrelationId", Group: GroupWorkflow,
		Short:  "Get the workflows with a name for a correlation id",
		Method: "GET", Path: "/api/workflow/{name}/correlated/{correlationId}",
		Args: []Arg{
			argWorkflowName,
			{Name: "correlationId", Usage: "Correlation Id (String value)"},
		},
		Flags: []Flag{
			boolFlag("includeClosed", "Include Closed (Boolean value, default == false)", "false"),
			boolFlag("includeTasks", "Include Tasks (Boolean value, default == false)", "false"),
		},
	},
	{
		Name: "stopWorkflow", Group: GroupWorkflow,
		Short:  "Terminate a running workflow",
		Method: "DELETE", Path: "/api/workflow/{workflowId}",
		Args:   []Arg{argWorkflowID},
		Flags:  []Flag{{Name: "reason", Usage: "Reason of termination (String value)"}},
	},
	{
		Name: "getWorkflow", Group: GroupWorkflow,
		Short:  "Get a Workflow Instance",
		Method: "GET", Path: "/api/workflow/{workflowId}",
		Args:   []Arg{argWorkflowID},
		Flags: []Flag{
			boolFlag("includeTasks", "Include Tasks (Boolean value, default == true)", "true"),
		},
	},
	{
		Name: "pauseWorkflow", Group: GroupWorkflow,
		Short:  "Pause a Workflow Instance",
		Method: "PUT", Path: "/api/workflow/{workflowId}/pause",
		Args:   []Arg{argWorkflowID},
	},
	{
		Name: "removeWorkflow", Group: GroupWorkflow,
		Short:  "Remove a Workflow Instance",
		Method: "DELETE", Path: "/api/workflow/{workflowId}/remove",
		Args:   []Arg{argWorkflowID},
	},
	{
		Name: "rerunWorkflow", Group: GroupWorkflow,
		Short:  "Rerun a workflow from a specific task, returns the workflow instance id",
		Method: "POST", Path: "/api/workflow/{workflowId}/rerun",
		Args:   []Arg{argWorkflowID},
		Body:   BodyOptional,
		BodyUsage: `Parameters in JSON format {"reRunFromWorkflowId":"string", "workflowInput":{}, ` +
			`"reRunFromTaskId":"string", "taskInput":{}, "correlationId":"string"}`,
		ReturnsID: true,
	},
	{
		Name: "restartWorkflow", Group: GroupWorkflow,
		Short:     "Restart a completed workflow, returns the workflow instance id",
		Method:    "POST", Path: "/api/workflow/{workflowId}/restart",
		Args:      []Arg{argWorkflowID},
		ReturnsID: true,
	},
	{
		Name: "resumeWorkflow", Group: GroupWorkflow,
		Short:  "Resume a paused Workflow Instance",
		Method: "PUT", Path: "/api/workflow/{workflowId}/resume",
		Args:   []Arg{argWorkflowID},
	},
	{
		Name: "retryWorkflow", Group: GroupWorkflow,
		Short:     "Retry the last failed task of a workflow, returns the workflow instance id",
		Method:    "POST", Path: "/api/workflow/{workflowId}/retry",
		Args:      []Arg{argWorkflowID},
		ReturnsID: true,
	},
	{
		Name: "skipWorkflowTask", Group: GroupWorkflow,
		Short:  "Skip a task of a running workflow",
		Method: "PUT", Path: "/api/workflow/{workflowId}/skiptask/{taskReferenceName}",
		Args: []Arg{
			argWorkflowID,
			{Name: "taskReferenceName", Usage: "Task Reference Name"},
		},
		Body:      BodyOptional,
		BodyUsage: `Parameters in JSON format {"taskInput":{}, "taskOutput":{}}`,
	},
}

var operationIndex = func() map[string]*Operation {
	idx := make(map[string]*Operation, len(operations))
	for i := range operations {
		idx[operations[i].Name] = &operations[i]
	}
	return idx
}()

// Operations returns every operation in table order
func Operations() []*Operation {
	ops := make([]*Operation, len(operations))
	for i := range operations {
		ops[i] = &operations[i]
	}
	return ops
}

// Lookup finds an operation by command name
func Lookup(name string) (*Operation, error) {
	op, ok := operationIndex[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownOperation, name)
	}
	return op, nil
}
