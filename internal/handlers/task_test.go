package handlers

import (
	"fmt"
	"net/url"
	"strings"
	"testing"

	"github.com/olgakuzina/task-manager/internal/models"
	"github.com/olgakuzina/task-manager/internal/services"
	"github.com/stretchr/testify/suite"
)

// TaskHandlerTestSuite covers the task pages end to end through the router.
type TaskHandlerTestSuite struct {
	suite.Suite
	env *testEnv

	owner    *models.User
	executor *models.User
	status   *models.Status
}

// SetupTest runs before each test
func (suite *TaskHandlerTestSuite) SetupTest() {
	suite.env = setupTestEnv(suite.T())
	suite.owner = suite.env.createUser(suite.T(), "owner")
	suite.executor = suite.env.createUser(suite.T(), "executor")
	suite.status = suite.env.createStatus(suite.T(), "To Do")
}

func (suite *TaskHandlerTestSuite) taskForm(name string) url.Values {
	return url.Values{
		"name":        {name},
		"description": {"something to do"},
		"status":      {fmt.Sprint(suite.status.ID)},
		"executor":    {fmt.Sprint(suite.executor.ID)},
	}
}

func (suite *TaskHandlerTestSuite) TestCreate_OwnerForcedFromSession() {
	r := suite.env.router(suite.owner)

	// A forged owner field in the submission is ignored.
	form := suite.taskForm("Write docs")
	form.Set("owner", fmt.Sprint(suite.executor.ID))
	w := postForm(r, "/tasks/create", form)

	suite.Equal(302, w.Code)
	suite.Equal("/tasks", w.Header().Get("Location"))

	task, err := suite.env.taskService.Get(1)
	suite.Require().NoError(err)
	suite.Equal(suite.owner.ID, task.OwnerID)
	suite.Equal(suite.executor.ID, task.ExecutorID)
}

func (suite *TaskHandlerTestSuite) TestCreate_MissingStatusAndExecutor() {
	r := suite.env.router(suite.owner)
	w := postForm(r, "/tasks/create", url.Values{"name": {"Write docs"}})

	suite.Equal(200, w.Code)
	suite.Contains(w.Body.String(), "This field is required.")
	suite.EqualValues(0, suite.env.countRows(suite.T(), &models.Task{}))
}

func (suite *TaskHandlerTestSuite) TestCreate_NameTooLong() {
	r := suite.env.router(suite.owner)
	w := postForm(r, "/tasks/create", suite.taskForm(strings.Repeat("x", 151)))

	suite.Equal(200, w.Code)
	suite.Contains(w.Body.String(), "Ensure this value has at most 150 characters.")
	suite.EqualValues(0, suite.env.countRows(suite.T(), &models.Task{}))
}

func (suite *TaskHandlerTestSuite) TestCreate_DuplicateName() {
	suite.env.createTask(suite.T(), suite.owner, "Write docs", suite.status.ID, suite.executor.ID)

	r := suite.env.router(suite.owner)
	w := postForm(r, "/tasks/create", suite.taskForm("Write docs"))

	suite.Equal(200, w.Code)
	suite.Contains(w.Body.String(), "A task with this name already exists.")
	suite.EqualValues(1, suite.env.countRows(suite.T(), &models.Task{}))
}

func (suite *TaskHandlerTestSuite) TestCreate_UnknownLabelRejected() {
	r := suite.env.router(suite.owner)

	form := suite.taskForm("Write docs")
	form["labels"] = []string{"999"}
	w := postForm(r, "/tasks/create", form)

	suite.Equal(200, w.Code)
	suite.Contains(w.Body.String(), "Select valid labels.")
	suite.EqualValues(0, suite.env.countRows(suite.T(), &models.Task{}))
}

func (suite *TaskHandlerTestSuite) TestUpdate_PreservesOwner() {
	task := suite.env.createTask(suite.T(), suite.owner, "Write docs", suite.status.ID, suite.executor.ID)

	// The executor edits the task; ownership stays with the creator.
	r := suite.env.router(suite.executor)
	form := suite.taskForm("Write better docs")
	form.Set("owner", fmt.Sprint(suite.executor.ID))
	w := postForm(r, fmt.Sprintf("/tasks/%d/update", task.ID), form)

	suite.Equal(302, w.Code)

	updated, err := suite.env.taskService.Get(task.ID)
	suite.Require().NoError(err)
	suite.Equal("Write better docs", updated.Name)
	suite.Equal(suite.owner.ID, updated.OwnerID)
}

func (suite *TaskHandlerTestSuite) TestUpdate_ReplacesLabels() {
	bug := suite.env.createLabel(suite.T(), "bug")
	feature := suite.env.createLabel(suite.T(), "feature")
	task := suite.env.createTask(suite.T(), suite.owner, "Write docs", suite.status.ID, suite.executor.ID, bug.ID)

	r := suite.env.router(suite.owner)
	form := suite.taskForm("Write docs")
	form["labels"] = []string{fmt.Sprint(feature.ID)}
	w := postForm(r, fmt.Sprintf("/tasks/%d/update", task.ID), form)

	suite.Equal(302, w.Code)

	updated, err := suite.env.taskService.Get(task.ID)
	suite.Require().NoError(err)
	suite.Require().Len(updated.Labels, 1)
	suite.Equal(feature.ID, updated.Labels[0].LabelID)
}

func (suite *TaskHandlerTestSuite) TestDelete_NonOwnerRejected() {
	task := suite.env.createTask(suite.T(), suite.owner, "Write docs", suite.status.ID, suite.executor.ID)

	r := suite.env.router(suite.executor)
	w := postForm(r, fmt.Sprintf("/tasks/%d/delete", task.ID), url.Values{})

	suite.Equal(302, w.Code)
	suite.Equal("/tasks", w.Header().Get("Location"))
	suite.EqualValues(1, suite.env.countRows(suite.T(), &models.Task{}))
}

func (suite *TaskHandlerTestSuite) TestDelete_OwnerSucceeds() {
	bug := suite.env.createLabel(suite.T(), "bug")
	task := suite.env.createTask(suite.T(), suite.owner, "Write docs", suite.status.ID, suite.executor.ID, bug.ID)

	r := suite.env.router(suite.owner)
	w := postForm(r, fmt.Sprintf("/tasks/%d/delete", task.ID), url.Values{})

	suite.Equal(302, w.Code)
	suite.EqualValues(0, suite.env.countRows(suite.T(), &models.Task{}))
	suite.EqualValues(0, suite.env.countRows(suite.T(), &models.TaskLabel{}))
	// The label itself survives the task delete.
	suite.EqualValues(1, suite.env.countRows(suite.T(), &models.Label{}))
}

func (suite *TaskHandlerTestSuite) TestList_MyTasksOnly() {
	suite.env.createTask(suite.T(), suite.owner, "Mine", suite.status.ID, suite.executor.ID)
	// Owned by the executor, assigned to the owner. Excluded by the filter:
	// it covers ownership, not assignment.
	suite.env.createTask(suite.T(), suite.executor, "Assigned to me", suite.status.ID, suite.owner.ID)

	r := suite.env.router(suite.owner)
	w := get(r, "/tasks?my_tasks=on")

	suite.Equal(200, w.Code)
	suite.Contains(w.Body.String(), "Mine")
	suite.NotContains(w.Body.String(), "Assigned to me")
}

func (suite *TaskHandlerTestSuite) TestList_FiltersCompose() {
	done := suite.env.createStatus(suite.T(), "Done")
	bug := suite.env.createLabel(suite.T(), "bug")
	suite.env.createTask(suite.T(), suite.owner, "Labeled chore", suite.status.ID, suite.executor.ID, bug.ID)
	suite.env.createTask(suite.T(), suite.owner, "Plain chore", suite.status.ID, suite.executor.ID)
	suite.env.createTask(suite.T(), suite.owner, "Finished chore", done.ID, suite.owner.ID)

	r := suite.env.router(suite.owner)

	w := get(r, fmt.Sprintf("/tasks?status=%d", done.ID))
	suite.Equal(200, w.Code)
	suite.Contains(w.Body.String(), "Finished chore")
	suite.NotContains(w.Body.String(), "Plain chore")

	w = get(r, fmt.Sprintf("/tasks?labels=%d", bug.ID))
	suite.Equal(200, w.Code)
	suite.Contains(w.Body.String(), "Labeled chore")
	suite.NotContains(w.Body.String(), "Plain chore")

	w = get(r, fmt.Sprintf("/tasks?status=%d&executor=%d", suite.status.ID, suite.executor.ID))
	suite.Equal(200, w.Code)
	suite.Contains(w.Body.String(), "Plain chore")
	suite.NotContains(w.Body.String(), "Finished chore")
}

func (suite *TaskHandlerTestSuite) TestList_Pagination() {
	first := suite.env.createTask(suite.T(), suite.owner, "First chore", suite.status.ID, suite.executor.ID)
	second := suite.env.createTask(suite.T(), suite.owner, "Second chore", suite.status.ID, suite.executor.ID)
	third := suite.env.createTask(suite.T(), suite.owner, "Third chore", suite.status.ID, suite.executor.ID)

	r := suite.env.router(suite.owner)

	w := get(r, "/tasks?limit=2")
	suite.Equal(200, w.Code)
	body := w.Body.String()
	suite.Contains(body, first.Name)
	suite.Contains(body, second.Name)
	suite.NotContains(body, third.Name)
	suite.Contains(body, "3 tasks")
	suite.Contains(body, "Next")
	suite.NotContains(body, "Previous")

	w = get(r, "/tasks?limit=2&page=2")
	suite.Equal(200, w.Code)
	body = w.Body.String()
	suite.Contains(body, third.Name)
	suite.NotContains(body, first.Name)
	suite.Contains(body, "Previous")
	suite.NotContains(body, "Next")
}

func (suite *TaskHandlerTestSuite) TestList_PageLinksKeepFilters() {
	done := suite.env.createStatus(suite.T(), "Done")
	for i := 0; i < 3; i++ {
		suite.env.createTask(suite.T(), suite.owner, fmt.Sprintf("Chore %d", i), done.ID, suite.executor.ID)
	}

	r := suite.env.router(suite.owner)
	w := get(r, fmt.Sprintf("/tasks?status=%d&limit=2", done.ID))

	suite.Equal(200, w.Code)
	suite.Contains(w.Body.String(), fmt.Sprintf("/tasks?limit=2&amp;page=2&amp;status=%d", done.ID))
}

func (suite *TaskHandlerTestSuite) TestDetail() {
	bug := suite.env.createLabel(suite.T(), "bug")
	task := suite.env.createTask(suite.T(), suite.owner, "Write docs", suite.status.ID, suite.executor.ID, bug.ID)

	r := suite.env.router(suite.owner)
	w := get(r, fmt.Sprintf("/tasks/%d", task.ID))

	suite.Equal(200, w.Code)
	body := w.Body.String()
	suite.Contains(body, "Write docs")
	suite.Contains(body, "To Do")
	suite.Contains(body, "bug")
}

func (suite *TaskHandlerTestSuite) TestDetail_NotFound() {
	r := suite.env.router(suite.owner)
	w := get(r, "/tasks/999")

	suite.Equal(404, w.Code)
}

func (suite *TaskHandlerTestSuite) TestServiceDelete_NotOwnerSentinel() {
	task := suite.env.createTask(suite.T(), suite.owner, "Write docs", suite.status.ID, suite.executor.ID)

	err := suite.env.taskService.Delete(suite.executor.ID, task.ID)
	suite.ErrorIs(err, services.ErrNotTaskOwner)

	_, err = suite.env.taskService.Get(task.ID)
	suite.NoError(err)
}

// TestTaskHandlerTestSuite runs the test suite
func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
