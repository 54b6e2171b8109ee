package view

type AddressItem struct {
	ID      int64
	Street  string
	City    string
	State   string
	Pincode string
	Country string
	Phone   string
}

type AddressPage struct {
	Addresses []AddressItem
	Form      AddressForm
	Errors    map[string]string
}

type AddressForm struct {
	Phone   string
	Street  string
	City    string
	State   string
	Pincode string
	Country string
}
