// internal/workers/creator/navigate-board/models.go
package navigateboard

import "gigboard/internal/models"

type Input struct {
	BoardID string      `json:"boardId"`
	View    models.View `json:"view"`
}

type Output struct {
	ActivePage models.View `json:"activePage"`
	Navigation models.View `json:"navigation"`
}
