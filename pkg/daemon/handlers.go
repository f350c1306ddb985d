package daemon

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/quiltkit/quiltd/pkg/calibration"
	"github.com/quiltkit/quiltd/pkg/config"
	"github.com/quiltkit/quiltd/pkg/version"
)

func getConfig(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, store.Snapshot())
}

func getQuilt(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, store.DerivedValues())
}

func getCalibration(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, store.Calibration())
}

func setCalibration(c *gin.Context) {
	var rec calibration.Record
	if err := c.BindJSON(&rec); err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	store.SetCalibration(rec)
	logrus.WithField("configVersion", rec.ConfigVersion).Info("calibration replaced via API")

	c.IndentedJSON(http.StatusCreated, "ok")
}

func getTileHeight(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, store.TileHeight())
}

func setTileHeight(c *gin.Context) {
	var v int
	if err := c.BindJSON(&v); err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	store.SetTileHeight(v)
	logrus.Infof("set tile height to %d", v)

	c.IndentedJSON(http.StatusCreated, "ok")
}

func getNumViews(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, store.NumViews())
}

func setNumViews(c *gin.Context) {
	var v int
	if err := c.BindJSON(&v); err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	store.SetNumViews(v)
	logrus.Infof("set num views to %d", v)

	c.IndentedJSON(http.StatusCreated, "ok")
}

func getInlineView(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, store.InlineView())
}

func setInlineView(c *gin.Context) {
	var v int
	if err := c.BindJSON(&v); err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	store.SetInlineView(v)
	logrus.Infof("set inline view to %d", v)

	c.IndentedJSON(http.StatusCreated, "ok")
}

func getDepthiness(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, store.Depthiness())
}

func setDepthiness(c *gin.Context) {
	var v float64
	if err := c.BindJSON(&v); err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	store.SetDepthiness(v)
	logrus.Infof("set depthiness to %g", v)

	c.IndentedJSON(http.StatusCreated, "ok")
}

func getFovy(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, store.Fovy())
}

func setFovy(c *gin.Context) {
	var v float64
	if err := c.BindJSON(&v); err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	store.SetFovy(v)
	logrus.Infof("set fovy to %g", v)

	c.IndentedJSON(http.StatusCreated, "ok")
}

func getTrackball(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, config.Trackball{
		X: store.TrackballX(),
		Y: store.TrackballY(),
	})
}

func setTrackball(c *gin.Context) {
	var t config.Trackball
	if err := c.BindJSON(&t); err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	// Two setters, two change events: the store does not coalesce.
	store.SetTrackballX(t.X)
	store.SetTrackballY(t.Y)

	c.IndentedJSON(http.StatusCreated, "ok")
}

func getTarget(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, config.Target{
		X:    store.TargetX(),
		Y:    store.TargetY(),
		Z:    store.TargetZ(),
		Diam: store.TargetDiam(),
	})
}

func setTarget(c *gin.Context) {
	var t config.Target
	if err := c.BindJSON(&t); err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	store.SetTargetX(t.X)
	store.SetTargetY(t.Y)
	store.SetTargetZ(t.Z)
	store.SetTargetDiam(t.Diam)

	c.IndentedJSON(http.StatusCreated, "ok")
}

func refreshCalibration(c *gin.Context) {
	if err := provider.Sync(store); err != nil {
		c.IndentedJSON(http.StatusBadGateway, err.Error())
		_ = c.AbortWithError(http.StatusBadGateway, err)
		return
	}

	c.IndentedJSON(http.StatusOK, "ok")
}

func getEvents(c *gin.Context) {
	ch, id := hub.SubscribeChan(16)
	defer hub.Unsubscribe(id)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	c.Stream(func(_ io.Writer) bool {
		select {
		case ev := <-ch:
			c.SSEvent(ev.Name, ev.Data)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

func getVersion(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, version.Version)
}
