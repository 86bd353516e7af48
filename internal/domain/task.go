package domain

// Task is a named unit of work that time entries may reference.
// Task lifecycle is owned by the project-management collaborator; this core
// keeps the name so reports and search can resolve labels. An entry whose
// task was deleted keeps its task id and stays queryable.
type Task struct {
	ID   int64
	Name string
}

// Project is a named container that time entries may reference.
type Project struct {
	ID   int64
	Name string
}
