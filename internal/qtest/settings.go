package qtest

import (
	"context"
	"fmt"

	"github.com/qasymphony/qtest-ci/internal/errors"
	"github.com/qasymphony/qtest-ci/internal/pipeline"
)

// SaveSetting stores the CI setting of a pipeline in qTest, so the qTest UI can show where results come from. Both
// the legacy and the current shape are sent as-is; qTest tells them apart by their fields.
func (c Client) SaveSetting(ctx context.Context, projectID int64, setting pipeline.Setting) error {
	if setting == nil {
		return errors.NewInputError("setting required")
	}

	endpoint := fmt.Sprintf("/api/v3/projects/%d/ci-settings", projectID)

	resp, err := c.postJSON(ctx, endpoint, nil, setting)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(endpoint, resp); err != nil {
		return c.logError(err)
	}

	node, err := c.readBody(endpoint, resp)
	if err != nil {
		return err
	}

	if id := node.Get("id").Long(); id != 0 {
		c.Log.Debugf("qTest stored the CI setting with ID %d", id)
	}

	return nil
}
