package execution

import (
	"math"

	"github.com/quantfold/ordersim/src/engine/models"
)

// ConvertSize normalizes a heterogeneous sizing convention into a signed
// share delta. A non-empty status info means the conversion failed and the
// order must be rejected.
func ConvertSize(size float64, sizeType models.SizeType, st models.ExecState) (float64, models.StatusInfo) {
	if sizeType.RequiresValPrice() && !st.HasValidValPrice() {
		return 0, models.StatusInfoValPriceInvalid
	}

	switch sizeType {
	case models.SizeTypeAmount:
		return size, models.StatusInfoNone
	case models.SizeTypeValue:
		return size / st.ValPrice, models.StatusInfoNone
	case models.SizeTypePercent:
		if math.IsNaN(st.Value) {
			return 0, models.StatusInfoValPriceInvalid
		}
		return size * st.Value / st.ValPrice, models.StatusInfoNone
	case models.SizeTypeTargetAmount:
		return size - st.Position, models.StatusInfoNone
	case models.SizeTypeTargetValue:
		return size/st.ValPrice - st.Position, models.StatusInfoNone
	case models.SizeTypeTargetPercent:
		if math.IsNaN(st.Value) {
			return 0, models.StatusInfoValPriceInvalid
		}
		return size*st.Value/st.ValPrice - st.Position, models.StatusInfoNone
	default:
		return 0, models.StatusInfoSizeNaN
	}
}
