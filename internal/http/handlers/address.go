package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"wolfly.in/app/internal/backend"
	"wolfly.in/app/internal/http/flash"
	"wolfly.in/app/internal/http/middleware"
	"wolfly.in/app/internal/http/render"
	"wolfly.in/app/internal/http/validation"
	"wolfly.in/app/internal/pincode"
	"wolfly.in/app/internal/shared/apperr"
	"wolfly.in/app/pkg/view"
)

// AddressHandler covers checkout-adjacent address capture: saved address
// list, the create form, and the pincode autofill endpoint behind it.
type AddressHandler struct {
	api      *backend.Client
	pincodes *pincode.Client
	codec    *flash.Codec
}

func NewAddressHandler(api *backend.Client, pincodes *pincode.Client, codec *flash.Codec) *AddressHandler {
	return &AddressHandler{api: api, pincodes: pincodes, codec: codec}
}

func (h *AddressHandler) List(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	addrs, err := h.api.ListAddresses(c.Request.Context(), u.Token)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	page := view.AddressPage{Addresses: make([]view.AddressItem, 0, len(addrs))}
	for _, a := range addrs {
		page.Addresses = append(page.Addresses, addressItem(a))
	}

	render.Page(c, http.StatusOK, "addresses.tmpl", gin.H{
		"Title": "Shipping Addresses",
		"Page":  page,
	})
}

type addressForm struct {
	Phone   string `form:"phone" binding:"required,numeric,min=10,max=12"`
	Street  string `form:"street" binding:"required"`
	Pincode string `form:"pincode" binding:"required,numeric,len=6"`
	City    string `form:"city"`
	State   string `form:"state"`
	Country string `form:"country"`
}

// Create saves a new address. City/state/country left blank by the form are
// filled from the pincode, server-side, so the address is complete even with
// scripting disabled.
func (h *AddressHandler) Create(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	var in addressForm
	if err := c.ShouldBind(&in); err != nil {
		fields := validation.FromBindError(err, &in)
		page := view.AddressPage{
			Form: view.AddressForm{
				Phone: in.Phone, Street: in.Street, Pincode: in.Pincode,
				City: in.City, State: in.State, Country: in.Country,
			},
			Errors: fields,
		}
		if addrs, aerr := h.api.ListAddresses(c.Request.Context(), u.Token); aerr == nil {
			for _, a := range addrs {
				page.Addresses = append(page.Addresses, addressItem(a))
			}
		}
		render.Page(c, http.StatusUnprocessableEntity, "addresses.tmpl", gin.H{
			"Title": "Shipping Addresses",
			"Page":  page,
		})
		return
	}

	if in.City == "" || in.State == "" {
		loc, err := h.pincodes.Lookup(c.Request.Context(), in.Pincode)
		if err != nil {
			render.RedirectWithFlash(c, h.codec, "/account/addresses", view.FlashError, apperr.PublicMessage(err))
			return
		}
		in.City = loc.District
		in.State = loc.State
		in.Country = loc.Country
	}
	if in.Country == "" {
		in.Country = "India"
	}

	pin, _ := strconv.ParseInt(in.Pincode, 10, 64)
	phone, _ := strconv.ParseInt(in.Phone, 10, 64)

	err := h.api.AddAddress(c.Request.Context(), u.Token, backend.AddressInput{
		VillageOrTown: in.Street,
		City:          in.City,
		State:         in.State,
		Pincode:       pin,
		Phone:         phone,
		Country:       in.Country,
	})
	if err != nil {
		render.RedirectWithFlash(c, h.codec, "/account/addresses", view.FlashError, apperr.PublicMessage(err))
		return
	}
	render.RedirectWithFlash(c, h.codec, "/account/addresses", view.FlashSuccess, "Address saved.")
}

// LookupPincode backs the form's autofill: /api/pincode/:code.
func (h *AddressHandler) LookupPincode(c *gin.Context) {
	loc, err := h.pincodes.Lookup(c.Request.Context(), c.Param("code"))
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"district": loc.District,
		"state":    loc.State,
		"country":  loc.Country,
	})
}

func addressItem(a backend.Address) view.AddressItem {
	return view.AddressItem{
		ID:      a.ID,
		Street:  a.VillageOrTown,
		City:    a.City,
		State:   a.State,
		Pincode: strconv.FormatInt(a.Pincode, 10),
		Country: a.Country,
		Phone:   strconv.FormatInt(a.Phone, 10),
	}
}
